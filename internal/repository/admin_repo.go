package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/helplink/api/internal/model"
	"gorm.io/gorm"
)

// AdminRepository runs the aggregate queries behind the moderation dashboard
type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Statistics gathers platform-wide counts for the dashboard
func (r *AdminRepository) Statistics() (*model.Statistics, error) {
	var stats model.Statistics

	err := r.db.Model(&model.User{}).
		Select(`COUNT(*) AS total_users,
			COUNT(*) FILTER (WHERE account_type = 'beneficiary') AS beneficiaries,
			COUNT(*) FILTER (WHERE account_type = 'donor') AS donors,
			COUNT(*) FILTER (WHERE account_type = 'volunteer') AS volunteers,
			COUNT(*) FILTER (WHERE account_type = 'verified_organization') AS organizations,
			COUNT(*) FILTER (WHERE badge = 'verified') AS verified_users,
			COUNT(*) FILTER (WHERE badge = 'under_review') AS pending_verification`).
		Scan(&stats.Users).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&model.Post{}).
		Select(`COUNT(*) AS total_posts,
			COUNT(*) FILTER (WHERE type = 'donation') AS donation_posts,
			COUNT(*) FILTER (WHERE type = 'request') AS request_posts,
			COUNT(*) FILTER (WHERE status = 'active') AS active_posts,
			COUNT(*) FILTER (WHERE status = 'closed') AS closed_posts,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending_posts`).
		Scan(&stats.Posts).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&model.Donation{}).
		Select(`COUNT(*) AS total_donations,
			COALESCE(SUM(amount), 0) AS total_amount,
			COALESCE(AVG(amount), 0) AS average_amount,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending_donations,
			COUNT(*) FILTER (WHERE status = 'ongoing') AS ongoing_donations,
			COUNT(*) FILTER (WHERE status = 'fulfilled') AS fulfilled_donations`).
		Scan(&stats.Donations).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&model.Supporter{}).
		Select(`COUNT(*) AS total_supporters,
			COUNT(*) FILTER (WHERE type = 'share') AS shares,
			COUNT(*) FILTER (WHERE type = 'volunteer') AS volunteers,
			COUNT(*) FILTER (WHERE type = 'advocate') AS advocates,
			COUNT(*) FILTER (WHERE type = 'other') AS others`).
		Scan(&stats.Supporters).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&model.Comment{}).
		Select(`COUNT(*) AS total_comments,
			COUNT(*) FILTER (WHERE status = 'visible') AS visible_comments,
			COUNT(*) FILTER (WHERE status = 'hidden') AS hidden_comments,
			COUNT(*) FILTER (WHERE status = 'deleted') AS deleted_comments`).
		Scan(&stats.Comments).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&model.Chat{}).
		Select(`COUNT(*) AS total_chats,
			COUNT(*) FILTER (WHERE type = 'private') AS private_chats,
			COUNT(*) FILTER (WHERE type = 'group') AS group_chats`).
		Scan(&stats.Chats).Error
	if err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Message{}).Count(&stats.Chats.TotalMessages).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// RecentActivity returns the latest registrations, posts, donations and
// comments merged into one feed, newest first
func (r *AdminRepository) RecentActivity(limit int) ([]model.ActivityItem, error) {
	type row struct {
		Kind      string
		Actor     string
		Subject   string
		RefID     string
		CreatedAt time.Time
	}

	var rows []row
	err := r.db.Raw(`
		SELECT * FROM (
			SELECT 'user_registered' AS kind,
				first_name || ' ' || last_name AS actor,
				email AS subject,
				id::text AS ref_id, created_at
			FROM users
			UNION ALL
			SELECT 'post_created',
				(SELECT first_name || ' ' || last_name FROM users WHERE users.id = posts.user_id),
				title, id::text, created_at
			FROM posts
			UNION ALL
			SELECT 'donation_pledged',
				(SELECT first_name || ' ' || last_name FROM users WHERE users.id = donations.user_id),
				amount::text, id::text, created_at
			FROM donations
			UNION ALL
			SELECT 'comment_posted',
				(SELECT first_name || ' ' || last_name FROM users WHERE users.id = comments.user_id),
				LEFT(content, 80), id::text, created_at
			FROM comments
		) activity
		ORDER BY created_at DESC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]model.ActivityItem, 0, len(rows))
	for _, rw := range rows {
		item := model.ActivityItem{
			Kind:      rw.Kind,
			Actor:     rw.Actor,
			Subject:   rw.Subject,
			CreatedAt: rw.CreatedAt.Format(time.RFC3339),
		}
		if id, err := uuid.Parse(rw.RefID); err == nil {
			item.RefID = id
		}
		items = append(items, item)
	}
	return items, nil
}

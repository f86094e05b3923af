package service

import (
	"path/filepath"
	"strings"
)

// Extensions accepted for user uploads. Anything else is refused before
// it reaches object storage.
var (
	imageExtensions = map[string]bool{
		".png":  true,
		".jpg":  true,
		".jpeg": true,
		".gif":  true,
		".webp": true,
	}
	videoExtensions = map[string]bool{
		".mp4":  true,
		".webm": true,
		".mov":  true,
	}
)

func isAllowedImage(filename string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(filename))]
}

func isAllowedVideo(filename string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(filename))]
}

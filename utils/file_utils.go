package utils

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const (
	// Base directory for storing uploaded files
	uploadBaseDir = "uploads"
	// Base URL for serving files
	baseURL = "/uploads"
	// Maximum file size (10MB)
	maxFileSize = 10 * 1024 * 1024
)

var (
	// Allowed image extensions
	allowedImageExts = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
	}
	// Allowed video extensions
	allowedVideoExts = map[string]bool{
		".mp4":  true,
		".mov":  true,
		".webm": true,
	}

	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
)

// cleanFilename removes any potentially dangerous characters from the filename
func cleanFilename(filename string) string {
	filename = filepath.Base(filename)
	return unsafeFilenameChars.ReplaceAllString(filename, "")
}

// InitializeStorage creates necessary directories for file storage
func InitializeStorage() error {
	dirs := []string{
		uploadBaseDir,
		filepath.Join(uploadBaseDir, "avatars"),
		filepath.Join(uploadBaseDir, "clips"),
		filepath.Join(uploadBaseDir, "thumbnails"),
		filepath.Join(uploadBaseDir, "qr"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}

	return nil
}

// SaveAvatar validates, resizes and stores a streamer avatar image.
// Returns the public URL of the stored file.
func SaveAvatar(fileData []byte, filename string) (string, error) {
	if len(fileData) > maxFileSize {
		return "", fmt.Errorf("file too large. Maximum size is %d bytes", maxFileSize)
	}

	ext := strings.ToLower(filepath.Ext(cleanFilename(filename)))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("unsupported image format. Allowed formats: jpg, jpeg, png, gif")
	}

	img, err := imaging.Decode(bytes.NewReader(fileData))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %v", err)
	}

	// Square crop, then shrink to the dashboard avatar size
	resized := imaging.Fill(img, 256, 256, imaging.Center, imaging.Lanczos)

	if err := InitializeStorage(); err != nil {
		return "", err
	}

	name := uuid.NewString() + ".jpg"
	fullPath := filepath.Join(uploadBaseDir, "avatars", name)

	if err := imaging.Save(resized, fullPath, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("failed to save avatar: %v", err)
	}

	return baseURL + "/avatars/" + name, nil
}

// SaveHighlightClip stores a highlight video and extracts a poster frame.
// Returns the clip URL and the thumbnail URL.
func SaveHighlightClip(fileData []byte, filename string) (string, string, error) {
	if len(fileData) > maxFileSize {
		return "", "", fmt.Errorf("file too large. Maximum size is %d bytes", maxFileSize)
	}

	ext := strings.ToLower(filepath.Ext(cleanFilename(filename)))
	if !allowedVideoExts[ext] {
		return "", "", fmt.Errorf("unsupported video format. Allowed formats: mp4, mov, webm")
	}

	if err := InitializeStorage(); err != nil {
		return "", "", err
	}

	id := uuid.NewString()
	clipName := id + ext
	clipPath := filepath.Join(uploadBaseDir, "clips", clipName)

	if err := os.WriteFile(clipPath, fileData, 0644); err != nil {
		return "", "", fmt.Errorf("failed to save clip: %v", err)
	}

	thumbURL, err := generateClipThumbnail(clipPath, id)
	if err != nil {
		// Keep the clip even when the poster frame fails
		return baseURL + "/clips/" + clipName, "", err
	}

	return baseURL + "/clips/" + clipName, thumbURL, nil
}

// generateClipThumbnail extracts a frame at 1s and stores a resized JPEG
func generateClipThumbnail(videoPath, id string) (string, error) {
	rawPath := filepath.Join(uploadBaseDir, "thumbnails", id+"_raw.jpg")

	// Generate thumbnail using ffmpeg
	err := ffmpeg.Input(videoPath).
		Output(rawPath, ffmpeg.KwArgs{"vframes": 1, "ss": "00:00:01"}).
		OverWriteOutput().
		Run()
	if err != nil {
		return "", fmt.Errorf("failed to generate thumbnail: %v", err)
	}
	defer os.Remove(rawPath)

	thumbnailData, err := os.ReadFile(rawPath)
	if err != nil {
		return "", fmt.Errorf("failed to read thumbnail file: %v", err)
	}

	img, err := imaging.Decode(bytes.NewReader(thumbnailData))
	if err != nil {
		return "", fmt.Errorf("failed to decode thumbnail: %v", err)
	}

	// Resize to max width of 320px while maintaining aspect ratio
	resized := imaging.Resize(img, 320, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %v", err)
	}

	thumbName := id + ".jpg"
	thumbPath := filepath.Join(uploadBaseDir, "thumbnails", thumbName)
	if err := os.WriteFile(thumbPath, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %v", err)
	}

	return baseURL + "/thumbnails/" + thumbName, nil
}

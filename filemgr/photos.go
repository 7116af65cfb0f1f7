package filemgr

import (
	"bytes"
	"fmt"
	_ "image/gif"
	_ "image/png"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

// Photos stores menu item photos under Root: a resized JPEG plus a square thumbnail.
type Photos struct {
	Root   string
	Logger *log.Logger
}

func NewPhotos(root string, logger *log.Logger) *Photos {
	if logger == nil {
		logger = log.Default()
	}
	return &Photos{Root: root, Logger: logger}
}

// Save validates, decodes and re-encodes an upload. It returns the public URL of the photo.
func (p *Photos) Save(reader io.Reader, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !isExtensionAllowed(ext, PicPhoto) {
		return "", fmt.Errorf("%w: %s", ErrInvalidExtension, ext)
	}

	buf, err := io.ReadAll(io.LimitReader(reader, MaxPhotoSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(buf) > MaxPhotoSize {
		return "", ErrFileTooLarge
	}

	head := buf
	if len(head) > 512 {
		head = head[:512]
	}
	if mimeType := sniffMIME(head, header.Header.Get("Content-Type")); !isMIMEAllowed(mimeType, PicPhoto) {
		return "", fmt.Errorf("%w: %s", ErrInvalidMIME, mimeType)
	}

	img, err := imaging.Decode(bytes.NewReader(buf), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	name := uuid.New().String() + ".jpg"

	photoDir := ResolvePath(p.Root, PicPhoto)
	thumbDir := ResolvePath(p.Root, PicThumb)
	for _, dir := range []string{photoDir, thumbDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	// Re-encoding also drops EXIF.
	photo := imaging.Fit(img, photoWidth, photoHeight, imaging.Lanczos)
	if err := imaging.Save(photo, filepath.Join(photoDir, name), imaging.JPEGQuality(90)); err != nil {
		return "", fmt.Errorf("save photo: %w", err)
	}

	thumb := imaging.Fill(img, thumbSize, thumbSize, imaging.Center, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(thumbDir, name), imaging.JPEGQuality(85)); err != nil {
		p.Logger.Printf("filemgr: thumbnail for %s failed: %v", name, err)
	}

	b := photo.Bounds()
	p.Logger.Printf("filemgr: saved %s (%dx%d, %d bytes uploaded)", name, b.Dx(), b.Dy(), len(buf))
	return publicURL(PicPhoto, name), nil
}

// SaveFormFile saves the file under formKey. A missing file yields "" and no error.
func (p *Photos) SaveFormFile(form *multipart.Form, formKey string) (string, error) {
	if form == nil || len(form.File[formKey]) == 0 {
		return "", nil
	}
	hdr := form.File[formKey][0]
	file, err := hdr.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", formKey, err)
	}
	defer file.Close()
	return p.Save(file, hdr)
}

// ThumbURL maps a photo URL produced by Save to its thumbnail URL.
func ThumbURL(photoURL string) string {
	prefix := publicURL(PicPhoto, "")
	if !strings.HasPrefix(photoURL, prefix) {
		return photoURL
	}
	return publicURL(PicThumb, strings.TrimPrefix(photoURL, prefix))
}

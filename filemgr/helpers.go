package filemgr

import (
	"net/http"
	"path/filepath"
	"strings"
)

func isExtensionAllowed(ext string, picType PictureType) bool {
	for _, a := range AllowedExtensions[picType] {
		if ext == a {
			return true
		}
	}
	return false
}

func isMIMEAllowed(mimeType string, picType PictureType) bool {
	for _, a := range AllowedMIMEs[picType] {
		if mimeType == a {
			return true
		}
	}
	return false
}

// sniffMIME prefers the content sniff and falls back to the declared type.
func sniffMIME(head []byte, declared string) string {
	mimeType := http.DetectContentType(head)
	if mimeType == "application/octet-stream" && declared != "" {
		mimeType = declared
	}
	return mimeType
}

func ResolvePath(root string, picType PictureType) string {
	subfolder, ok := PictureSubfolders[picType]
	if !ok || subfolder == "" {
		subfolder = "misc"
	}
	return filepath.Join(root, filepath.FromSlash(subfolder))
}

func publicURL(picType PictureType, name string) string {
	return "/static/" + strings.TrimSuffix(PictureSubfolders[picType], "/") + "/" + name
}

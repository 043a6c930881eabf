package codec

import (
	"fmt"
	"image"
	"os"
	"os/exec"
	"runtime"
)

// startViewer opens path in the desktop's image viewer without waiting for it.
var startViewer = func(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}

// Display writes img to a temporary PNG and opens it with the system viewer.
// The temporary file is left for the viewer; its path is returned.
func Display(img image.Image) (string, error) {
	f, err := os.CreateTemp("", "chartist-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create preview file: %w", err)
	}
	path := f.Name()

	if err := Encode(f, img, "png"); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to encode preview: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write preview: %w", err)
	}
	if err := startViewer(path); err != nil {
		return path, fmt.Errorf("failed to open viewer: %w", err)
	}
	return path, nil
}

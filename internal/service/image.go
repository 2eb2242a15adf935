package service

import (
	"encoding/base64"
	"fmt"
	"strings"

	"profilehub/internal/domain"
)

// MaterializeImage converts a stored image into a client-consumable
// reference: inline bytes become a data URI, a stored blob name becomes a
// URL path under the static mount. Returns nil when no image was stored.
func MaterializeImage(img *domain.Image, mountPrefix string) *string {
	if img == nil {
		return nil
	}
	if img.Inline() {
		uri := fmt.Sprintf("data:%s;base64,%s", img.MIME, base64.StdEncoding.EncodeToString(img.Data))
		return &uri
	}
	if img.Name == "" {
		return nil
	}
	url := strings.TrimSuffix(mountPrefix, "/") + "/" + strings.TrimPrefix(img.Name, "/")
	return &url
}

package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/MKhiriev/secure-vault/internal/config"
	"github.com/MKhiriev/secure-vault/internal/logger"
)

type appInfoService struct {
	version string
}

// NewAppInfoService reports cfg.Version from GET /api/version. The version
// comes from config or from the build stamp and must be a single printable
// token.
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}
	if i := strings.IndexFunc(version, func(r rune) bool { return unicode.IsSpace(r) || !unicode.IsPrint(r) }); i >= 0 {
		return nil, fmt.Errorf("%w: unexpected character at %d in %q", ErrVersionIsNotSpecified, i, version)
	}

	logger.Debug().Str("version", version).Msg("serving app version")

	return &appInfoService{version: version}, nil
}

func (s *appInfoService) GetAppVersion(context.Context) string {
	return s.version
}

package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/matchpoint/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"MATCHPOINT_CONFIG",
		"MATCHPOINT_ADDR",
		"MATCHPOINT_LOG_LEVEL",
		"MATCHPOINT_REFRESH_INTERVAL_SEC",
		"MATCHPOINT_FETCH_TIMEOUT_SEC",
		"MATCHPOINT_FUZZY_THRESHOLD",
		"MATCHPOINT_MATCH_WINDOW_HOURS",
		"MATCHPOINT_PREMATCH_BASE_URL",
		"MATCHPOINT_PREMATCH_TOKEN",
		"MATCHPOINT_LIVE_BASE_URL",
		"MATCHPOINT_LIVE_TOKEN",
		"MATCHPOINT_FETCH_RATE_LIMIT",
	} {
		_ = os.Unsetenv(key)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
				convey.So(cfg.RefreshIntervalSec, convey.ShouldEqual, 60)
				convey.So(cfg.FuzzyThreshold, convey.ShouldEqual, 0.75)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MATCHPOINT_ADDR", ":9000")
			_ = os.Setenv("MATCHPOINT_REFRESH_INTERVAL_SEC", "30")
			_ = os.Setenv("MATCHPOINT_FUZZY_THRESHOLD", "0.9")
			_ = os.Setenv("MATCHPOINT_PREMATCH_TOKEN", "secret-a")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9000")
				convey.So(cfg.RefreshIntervalSec, convey.ShouldEqual, 30)
				convey.So(cfg.FuzzyThreshold, convey.ShouldEqual, 0.9)
				convey.So(cfg.PrematchToken, convey.ShouldEqual, "secret-a")
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			clearConfigEnvVars()
			dir := t.TempDir()
			path := filepath.Join(dir, "matchpoint.yaml")
			yamlContent := "addr: \":7000\"\nfetch_timeout_sec: 5\nmatch_window_hours: 48\n"
			convey.So(os.WriteFile(path, []byte(yamlContent), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("MATCHPOINT_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7000")
				convey.So(cfg.FetchTimeoutSec, convey.ShouldEqual, 5)
				convey.So(cfg.MatchWindowHours, convey.ShouldEqual, 48)
			})

			convey.Convey("And env vars override the file", func() {
				_ = os.Setenv("MATCHPOINT_ADDR", ":7100")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7100")
			})
		})

		convey.Convey("When the config is invalid", func() {
			_ = os.Setenv("MATCHPOINT_FUZZY_THRESHOLD", "1.5")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails with the invalid-config kind", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

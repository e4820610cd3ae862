package qnotebook

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "qnotebook.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfig(t *testing.T) {
	Convey("Given the default config", t, func() {
		cfg := NewConfig()
		So(cfg.Validate(), ShouldBeNil)
		So(cfg.Visibility, ShouldEqual, 0.8)
	})

	Convey("Given a YAML file", t, func() {
		Convey("Set keys should override the defaults", func() {
			cfg, err := LoadConfig(writeConfig(t, "visibility: 0.3\nenergies: [0, 2]\nkt_steps: 4\n"))
			So(err, ShouldBeNil)
			So(cfg.Visibility, ShouldEqual, 0.3)
			So(cfg.Energies, ShouldResemble, []float64{0, 2})
			So(cfg.KTSteps, ShouldEqual, 4)
			So(cfg.Tolerance, ShouldEqual, NewConfig().Tolerance)
		})

		Convey("Unknown keys should be rejected", func() {
			_, err := LoadConfig(writeConfig(t, "visibilty: 0.3\n"))
			So(err, ShouldNotBeNil)
		})

		Convey("Invalid values should be rejected", func() {
			_, err := LoadConfig(writeConfig(t, "kt_min: 3\nkt_max: 1\n"))
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)

			_, err = LoadConfig(writeConfig(t, "tolerance: 0\n"))
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
		})

		Convey("A missing file should fail", func() {
			_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
			So(err, ShouldNotBeNil)
		})
	})
}

package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParseLevelFallsBackToInfo(t *testing.T) {
	if got := parseLevel("nonsense"); got != logrus.InfoLevel {
		t.Errorf("parseLevel = %v, want info", got)
	}
	if got := parseLevel("DEBUG"); got != logrus.DebugLevel {
		t.Errorf("parseLevel = %v, want debug", got)
	}
}

func TestNewDefaultTagsComponent(t *testing.T) {
	log := NewDefault("storage")
	if log.Entry.Data["component"] != "storage" {
		t.Errorf("component field = %v, want storage", log.Entry.Data["component"])
	}
}

func TestWithErrorChains(t *testing.T) {
	log := NewDefault("test").WithError(nil).WithField("k", "v")
	if log == nil {
		t.Fatal("chained logger should not be nil")
	}
}

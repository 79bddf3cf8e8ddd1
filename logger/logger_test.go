package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInit(t *testing.T) {
	var console bytes.Buffer
	file := filepath.Join(t.TempDir(), "logs", "monaco.log")

	log, err := Init(Config{Level: "debug", Format: "json", OutputFile: file, MaxSize: 1, Console: &console})
	if err != nil {
		t.Fatal("Init() fail", err)
	}
	defer Close()

	if log.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level got=%v want=%v", log.GetLevel(), logrus.DebugLevel)
	}
	log.WithField("index", 2).Debug("outcome initialised")

	if !strings.Contains(console.String(), `"index":2`) {
		t.Fatalf("console got=%q", console.String())
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal("ReadFile() fail", err)
	}
	if !strings.Contains(string(data), "outcome initialised") {
		t.Fatalf("file got=%q", data)
	}
	if Logger != log {
		t.Fatal("Init() did not replace the package logger")
	}
}

func TestInitDefaults(t *testing.T) {
	var console bytes.Buffer
	log, err := Init(Config{Level: "loud", Console: &console})
	if err != nil {
		t.Fatal("Init() fail", err)
	}
	if log.GetLevel() != logrus.InfoLevel {
		t.Fatalf("level got=%v want=%v", log.GetLevel(), logrus.InfoLevel)
	}
	log.Debug("hidden")
	log.Info("shown")
	if strings.Contains(console.String(), "hidden") || !strings.Contains(console.String(), "shown") {
		t.Fatalf("console got=%q", console.String())
	}
}

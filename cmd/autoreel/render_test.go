package main

import (
	"strings"
	"testing"
)

func TestPrinterCheck(t *testing.T) {
	plain := printer{}
	line := plain.check("ffmpeg", toneGood, "/usr/bin/ffmpeg")
	if !strings.HasPrefix(line, "  ffmpeg ...") || !strings.HasSuffix(line, " ok  /usr/bin/ffmpeg") {
		t.Fatalf("unexpected line %q", line)
	}

	colored := printer{color: true}.check("ffprobe", toneBad, "missing")
	if !strings.Contains(colored, sgrRed+"fail"+sgrReset) {
		t.Fatalf("expected red tag, got %q", colored)
	}
}

func TestPrinterCheckLongLabel(t *testing.T) {
	line := printer{}.check("a very long label for a check", toneWarn, "")
	if !strings.HasSuffix(line, " .. warn") {
		t.Fatalf("unexpected line %q", line)
	}
}

func TestPrinterHeading(t *testing.T) {
	lines := printer{}.heading(" Checks ")
	if len(lines) != 2 || lines[0] != "Checks" || lines[1] != "======" {
		t.Fatalf("unexpected heading %q", lines)
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]column{{title: "Name"}, {title: "Seconds", right: true}}, [][]string{{"a.mp4"}})
	if !strings.Contains(out, "Name") || !strings.Contains(out, "a.mp4") {
		t.Fatalf("unexpected table %q", out)
	}
	if renderTable(nil, nil) != "" {
		t.Fatal("expected empty output without columns")
	}
}

func TestFormatSeconds(t *testing.T) {
	if got := formatSeconds(90); got != "90.00s (1.50 min)" {
		t.Fatalf("formatSeconds(90) = %q", got)
	}
}

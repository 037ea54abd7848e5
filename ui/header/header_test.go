package header

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/letterdesk/util"
)

func TestGetHeaderStyle_ContainsParts(t *testing.T) {
	result := GetHeaderStyle("편지", 80)

	if !strings.Contains(result, chevronLeft) {
		t.Errorf("Header should contain back chevron, got: %s", result)
	}
	if !strings.Contains(result, "편지") {
		t.Errorf("Header should contain title, got: %s", result)
	}
	if !strings.Contains(result, "v"+util.GetVersion()) {
		t.Errorf("Header should contain version, got: %s", result)
	}
}

func TestGetHeaderStyle_FitsWidth(t *testing.T) {
	for _, width := range []int{40, 80, 120} {
		result := GetHeaderStyle("내가 보낸 고민", width)
		if w := lipgloss.Width(result); w > width {
			t.Errorf("Header width %d exceeds terminal width %d", w, width)
		}
		if h := lipgloss.Height(result); h != 1 {
			t.Errorf("Header should be a single line at width %d, got %d lines", width, h)
		}
	}
}

func TestGetHeaderStyle_ZeroWidthUsesFallback(t *testing.T) {
	if result := GetHeaderStyle("편지", 0); result == "" {
		t.Error("Expected header even before the first window size message")
	}
}

func TestModelView(t *testing.T) {
	m := Model{Width: 80, Title: "편지"}
	if m.View() != GetHeaderStyle("편지", 80) {
		t.Error("View should delegate to GetHeaderStyle")
	}
	if cmd := m.Init(); cmd != nil {
		t.Error("Header should not start any command")
	}
}

package common

import "testing"

func TestCardWidth(t *testing.T) {
	tests := []struct {
		window int
		want   int
	}{
		{0, FallbackWidth - PagePaddingX*2},
		{10, MinCardWidth},
		{50, 50 - PagePaddingX*2},
		{200, MaxCardWidth},
	}
	for _, tt := range tests {
		if got := CardWidth(tt.window); got != tt.want {
			t.Errorf("CardWidth(%d) = %d, want %d", tt.window, got, tt.want)
		}
	}
}

func TestCardInnerWidth(t *testing.T) {
	if got := CardInnerWidth(MaxCardWidth); got != MaxCardWidth-CardPaddingX*2 {
		t.Errorf("CardInnerWidth = %d", got)
	}
}

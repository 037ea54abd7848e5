package common

const (
	// PagePaddingX is the horizontal padding around the card column (px-7 on the web page)
	PagePaddingX = 3

	// CardPaddingX and CardPaddingY mirror px-5 py-6 on the web cards, scaled to cells
	CardPaddingX = 2
	CardPaddingY = 1

	// MaxCardWidth keeps cards readable on wide terminals
	MaxCardWidth = 64

	// MinCardWidth is used when the terminal is narrower than any sensible card
	MinCardWidth = 24

	// FallbackWidth is used before the first WindowSizeMsg arrives
	FallbackWidth = 60

	// SkeletonBlockHeight is the height of a placeholder card (h-32)
	SkeletonBlockHeight = 4
)

// CardWidth returns the outer width of a card for a given window width
func CardWidth(windowWidth int) int {
	if windowWidth <= 0 {
		windowWidth = FallbackWidth
	}
	w := windowWidth - PagePaddingX*2
	if w > MaxCardWidth {
		return MaxCardWidth
	}
	if w < MinCardWidth {
		return MinCardWidth
	}
	return w
}

// CardInnerWidth returns the text width inside a card of cardWidth
func CardInnerWidth(cardWidth int) int {
	return cardWidth - CardPaddingX*2
}

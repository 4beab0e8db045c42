package shiritoridto

type RankEntry struct {
	Position int
	Player   string
	Score    int
}

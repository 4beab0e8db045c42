package shiritoripresenter

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/park285/Shiritori-KakaoTalk-bot/internal/obslog"
	"github.com/park285/Shiritori-KakaoTalk-bot/internal/shiritori"
)

// Presenter delivers formatted messages without coupling the engine to the
// command layer. It implements shiritori.Reporter; send failures are logged
// and never reach the session loop.
type Presenter struct {
	sendMessage  func(room, message string) error
	formatter    *Formatter
	openingDelay time.Duration
}

func NewPresenter(sendMessage func(room, message string) error, formatter *Formatter, openingDelay time.Duration) *Presenter {
	return &Presenter{
		sendMessage:  sendMessage,
		formatter:    formatter,
		openingDelay: openingDelay,
	}
}

// Text sends an already-formatted message to a room.
func (p *Presenter) Text(room, message string) {
	if p == nil || p.sendMessage == nil {
		return
	}
	if strings.TrimSpace(message) == "" {
		return
	}
	if err := p.sendMessage(room, message); err != nil {
		obslog.L().Error("send_message_error",
			zap.String("room", room),
			zap.Error(err),
		)
	}
}

func (p *Presenter) GameOpening(room, _ string, limit time.Duration) {
	p.Text(room, p.formatter.Opening(limit, p.openingDelay))
}

func (p *Presenter) GameSeeded(room, _, seed string) {
	p.Text(room, p.formatter.Seed(seed))
}

func (p *Presenter) TurnResult(room, _ string, rep *shiritori.TurnReport) {
	p.Text(room, p.formatter.Turn(ToDTOTurnReport(rep)))
}

func (p *Presenter) GameTimeout(room, _ string, score int) {
	p.Text(room, p.formatter.Timeout(score))
}

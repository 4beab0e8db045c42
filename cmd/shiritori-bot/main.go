package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/park285/Shiritori-KakaoTalk-bot/internal/adapter/shiritoripresenter"
	appcfg "github.com/park285/Shiritori-KakaoTalk-bot/internal/config"
	"github.com/park285/Shiritori-KakaoTalk-bot/internal/irisfast"
	"github.com/park285/Shiritori-KakaoTalk-bot/internal/lexicon"
	"github.com/park285/Shiritori-KakaoTalk-bot/internal/msgcat"
	"github.com/park285/Shiritori-KakaoTalk-bot/internal/obslog"
	"github.com/park285/Shiritori-KakaoTalk-bot/internal/rank"
	"github.com/park285/Shiritori-KakaoTalk-bot/internal/shiritori"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}

	headers := func() map[string]string {
		h := map[string]string{}
		if cfg.XUserID != "" {
			h["X-User-Id"] = cfg.XUserID
		}
		if cfg.XUserEmail != "" {
			h["X-User-Email"] = cfg.XUserEmail
		}
		if cfg.XSessionID != "" {
			h["X-Session-Id"] = cfg.XSessionID
		}
		return h
	}

	client := irisfast.NewClient(cfg.IrisBaseURL, irisfast.WithHeaderProvider(headers))

	ws := irisfast.NewWebSocket(cfg.IrisWSURL, 5, time.Second)
	ws.SetHeaderProvider(headers)
	ws.OnStateChange(func(state irisfast.WebSocketState) {
		obslog.L().Info("ws_state", zap.String("state", state.String()))
	})

	egress := irisfast.NewEgress(cfg.EgressMode, cfg.EgressDryRun, client, ws, obslog.L())

	cat, err := msgcat.New(cfg.MsgTemplateDir)
	if err != nil {
		log.Fatalf("message catalog error: %v", err)
	}
	formatter := shiritoripresenter.NewFormatter(cat)
	presenter := shiritoripresenter.NewPresenter(
		func(room, message string) error { return egress.SendText(context.Background(), room, message) },
		formatter,
		cfg.ShiritoriOpeningWait,
	)

	var lex shiritori.Lexicon
	if cfg.DatabaseURL != "" {
		store, err := lexicon.NewStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("wordbase init error: %v", err)
		}
		defer store.Close()
		lex = store
	} else {
		obslog.L().Warn("wordbase_memory_fallback")
		lex = lexicon.NewMemory()
	}

	mgr := shiritori.NewManager(lex, presenter, shiritori.Config{
		MinTurnTime:     cfg.ShiritoriMinTime,
		MaxTurnTime:     cfg.ShiritoriMaxTime,
		DefaultTurnTime: cfg.ShiritoriDefaultTime,
		OpeningDelay:    cfg.ShiritoriOpeningWait,
	})

	if cfg.DatabaseURL != "" {
		repo, err := shiritori.NewRepository(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("repository init error: %v", err)
		}
		defer repo.Close()
		mgr.AttachRepository(repo)
	}

	var ranks *rank.Store
	if cfg.RedisURL != "" {
		ranks, err = rank.NewStoreFromURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("rank store init error: %v", err)
		}
		defer ranks.Close()
		mgr.AttachRecorder(ranks)
	}

	ws.OnMessage(func(msg *irisfast.Message) {
		if msg == nil || msg.Msg == "" {
			return
		}
		if len(cfg.AllowedRooms) > 0 && !roomAllowed(cfg.AllowedRooms, msg.Room) {
			return
		}
		if strings.HasPrefix(strings.TrimSpace(msg.Msg), cfg.BotPrefix) {
			// Avoid blocking the WS loop
			go handleCommand(cfg, mgr, ranks, presenter, formatter, msg)
			return
		}
		// Non-command traffic feeds the author's running session, if any.
		mgr.Dispatch(userIDFromMessage(msg), msg.Room, msg.Msg)
	})

	cctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ws.Connect(cctx); err != nil {
		cancel()
		log.Fatalf("ws connect error: %v", err)
	}
	cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	mgr.CancelAll()
	_ = ws.Close(context.Background())
}

func handleCommand(cfg *appcfg.AppConfig, mgr *shiritori.Manager, ranks *rank.Store, presenter *shiritoripresenter.Presenter, formatter *shiritoripresenter.Formatter, msg *irisfast.Message) {
	raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(msg.Msg), cfg.BotPrefix))
	if raw == "" {
		presenter.Text(msg.Room, formatter.Help(cfg.ShiritoriDefaultTime))
		return
	}
	args := strings.Fields(raw)
	player := userIDFromMessage(msg)

	switch strings.ToLower(args[0]) {
	case "しりとり", "尻取り", "shiritori":
		limit := time.Duration(0)
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				presenter.Text(msg.Room, formatter.Help(cfg.ShiritoriDefaultTime))
				return
			}
			limit = time.Duration(n) * time.Second
		}
		switch err := mgr.Start(player, msg.Room, limit); err {
		case nil:
		case shiritori.ErrTimeLimitTooShort:
			presenter.Text(msg.Room, formatter.TimeTooShort())
		case shiritori.ErrTimeLimitTooLong:
			presenter.Text(msg.Room, formatter.TimeTooLong(cfg.ShiritoriMaxTime))
		default:
			obslog.L().Error("session_start_error", zap.Error(err))
		}

	case "check", "かくにん", "確認":
		if len(args) < 2 {
			presenter.Text(msg.Room, formatter.CheckUsage())
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		res, err := mgr.CheckWord(ctx, args[1])
		if err != nil {
			obslog.L().Error("check_word_error", zap.Error(err))
			return
		}
		presenter.Text(msg.Room, formatter.CheckReport(shiritoripresenter.ToDTOCheckResult(args[1], res)))

	case "stop", "やめる":
		if mgr.Cancel(player) {
			presenter.Text(msg.Room, formatter.Stopped())
		} else {
			presenter.Text(msg.Room, formatter.NoGame())
		}

	case "rank", "ランキング":
		if ranks == nil {
			presenter.Text(msg.Room, formatter.Rank(nil))
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		entries, err := ranks.Top(ctx, cfg.ShiritoriRankLimit)
		if err != nil {
			obslog.L().Error("rank_query_error", zap.Error(err))
			return
		}
		board := formatter.Rank(shiritoripresenter.ToDTORankEntries(entries))
		if player := userIDFromMessage(msg); player != "" {
			best, ok, err := ranks.Best(ctx, player)
			if err != nil {
				obslog.L().Error("rank_best_error", zap.Error(err))
			} else if ok {
				board += "\n" + formatter.MyBest(best)
			}
		}
		presenter.Text(msg.Room, board)

	default:
		presenter.Text(msg.Room, formatter.Help(cfg.ShiritoriDefaultTime))
	}
}

func userIDFromMessage(msg *irisfast.Message) string {
	if msg.JSON != nil && strings.TrimSpace(msg.JSON.UserID) != "" {
		return strings.TrimSpace(msg.JSON.UserID)
	}
	if msg.Sender != nil {
		return strings.TrimSpace(*msg.Sender)
	}
	return ""
}

func roomAllowed(allowed []string, room string) bool {
	for _, r := range allowed {
		if r == room {
			return true
		}
	}
	return false
}

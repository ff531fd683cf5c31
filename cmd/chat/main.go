package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	cacheadapter "github.com/RiteshJadhav021/connectu-messaging/internal/infrastructure/cache/adapter"
	transport "github.com/RiteshJadhav021/connectu-messaging/internal/infrastructure/transport/adapter"
	"github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/application/usecase"
	messaging "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/domain"
	repoadapter "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/persistence/repository/adapter"
)

// chat is a terminal client for one conversation: open, print history,
// relay stdin lines as messages, print live deliveries.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	var (
		apiURL    = flag.String("api", envOr("API_URL", "http://localhost:5000/api"), "REST API base URL")
		socketURL = flag.String("socket", envOr("SOCKET_URL", "ws://localhost:5000/ws"), "realtime gateway websocket URL")
		token     = flag.String("token", os.Getenv("TOKEN"), "bearer token")
		userID    = flag.String("user", os.Getenv("USER_ID"), "current user participant id")
		peerID    = flag.String("peer", os.Getenv("PEER_ID"), "counterpart participant id")
		asAlumni  = flag.Bool("alumni", false, "open as the alumni (provider) side")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	mode := messaging.ModeSeekerInitiated
	if *asAlumni {
		mode = messaging.ModeProviderInitiated
	}

	repo := repoadapter.NewHTTPMessageRepository(*apiURL, *token, nil)

	cache, err := cacheadapter.NewCacheFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cache: %v\n", err)
		os.Exit(1)
	}
	defer cache.Close()
	profiles := repoadapter.NewCachedProfileRepository(
		repoadapter.NewHTTPProfileRepository(*apiURL, nil), cache, 0)

	ctx := context.Background()

	open := usecase.NewOpenConversationUseCase(transport.NewSocketTransport(*socketURL), repo, logger)
	conv, err := open.Execute(ctx, usecase.OpenConversationInput{
		Mode:          mode,
		CurrentUserID: *userID,
		CounterpartID: *peerID,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "open conversation: %v\n", err)
		os.Exit(1)
	}
	defer conv.Close()

	name := *peerID
	if p, err := profiles.GetProfile(ctx, mode.CounterpartRole(), *peerID); err == nil && p.Name != "" {
		name = p.Name
	}
	fmt.Printf("-- chatting with %s on %s --\n", name, conv.ChannelID)

	for _, m := range conv.Transcript() {
		printMessage(conv, m, name)
	}

	conv.OnMessage(func(m messaging.Message) {
		if conv.Direction(m) == messaging.DirectionIncoming {
			printMessage(conv, m, name)
		}
	})

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, err := conv.Send(ctx, line); err != nil {
			fmt.Fprintf(os.Stderr, "send: %v\n", err)
		}
	}
}

func printMessage(conv *usecase.Conversation, m messaging.Message, peerName string) {
	who := "me"
	if conv.Direction(m) == messaging.DirectionIncoming {
		who = peerName
	}
	fmt.Printf("[%s] %s: %s\n", m.Timestamp.Local().Format("15:04"), who, m.Content)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/edulive/edulive-go/pkg/classroom"
	"github.com/edulive/edulive-go/pkg/command"
	"github.com/edulive/edulive-go/pkg/roomapi"
	"github.com/edulive/edulive-go/pkg/session"
	"github.com/edulive/edulive-go/pkg/transport"
)

type config struct {
	APIBaseURL  string `envconfig:"API_BASE_URL" default:"http://localhost:8080"`
	OrgID       string `envconfig:"ORG_ID" required:"true"`
	ProfilePath string `envconfig:"PROFILE_PATH" default:"room.yaml"`
	Debug       bool   `envconfig:"DEBUG" default:"false"`
}

type roomProfile struct {
	RoomID  string `yaml:"roomId"`
	Title   string `yaml:"title"`
	Name    string `yaml:"name"`
	UserID  string `yaml:"userId"`
	Role    string `yaml:"role"`
	Lobby   bool   `yaml:"lobby"`
	Quality string `yaml:"quality"`
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var conf config
	if err := envconfig.Process("", &conf); err != nil {
		log.Fatal().Err(err).Msg("failed to process config")
	}
	if conf.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	profileData, err := os.ReadFile(conf.ProfilePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", conf.ProfilePath).Msg("failed to read room profile")
	}
	var profile roomProfile
	if err := yaml.Unmarshal(profileData, &profile); err != nil {
		log.Fatal().Err(err).Msg("failed to parse room profile")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, &conf, &profile); err != nil {
		log.Fatal().Err(err).Msg("session failed")
	}
}

func run(ctx context.Context, conf *config, profile *roomProfile) error {
	client := roomapi.NewClient(&roomapi.ClientConfig{
		BaseURL:     conf.APIBaseURL,
		OrgID:       conf.OrgID,
		SDKVersion:  "edulive-go/0.1.0",
		SDKPlatform: "go",
		Logger:      log.Logger,
	})

	userID := profile.UserID
	if userID == "" {
		userID = uuid.NewString()
	}
	participant := classroom.Participant{
		ID:   userID,
		Name: profile.Name,
		Role: classroom.Role(profile.Role),
	}
	custom := classroom.DefaultCustomization().With(func(c *classroom.Customization) {
		c.EnableLobby = profile.Lobby
	})

	active, err := client.IsRoomActive(ctx, profile.RoomID)
	if err != nil {
		return err
	}
	var resp *roomapi.RoomResponse
	if active {
		resp, err = client.JoinRoom(ctx, profile.RoomID, &roomapi.JoinRoomRequest{
			Participant:   participant,
			Customization: &custom,
		})
	} else {
		resp, err = client.CreateRoom(ctx, &roomapi.CreateRoomRequest{
			RoomID:        profile.RoomID,
			Title:         profile.Title,
			Participant:   participant,
			Customization: &custom,
		})
	}
	if err != nil {
		return err
	}
	log.Info().Str("roomId", resp.RoomID).Str("serverUrl", resp.ServerURL).Msg("room ready")

	sess := session.New()
	sess.OnEvent(func(ev session.Event) {
		log.Info().Str("kind", string(ev.Kind)).Str("participantId", ev.ParticipantID).
			Str("reason", ev.Reason).Msg("event")
	})
	sess.OnStateChange(func(state session.State) {
		log.Info().Str("state", string(state)).Msg("state changed")
	})
	sess.OnClassEnded(func() {
		log.Info().Msg("class ended")
	})
	sess.OnKicked(func(reason string) {
		log.Info().Str("reason", reason).Msg("removed from class")
	})

	conn := transport.NewWebSocketConn(log.Logger)
	conn.OnMessage(sess.HandleRaw)
	terminated := make(chan struct{})
	conn.OnDisconnect(func() {
		close(terminated)
	})

	sess.Begin()
	if err := conn.Dial(ctx, resp.EmbedURL()); err != nil {
		return err
	}
	defer conn.Close()

	dispatcher := command.NewDispatcher(conn)
	if q := command.Quality(profile.Quality); q != "" {
		if err := dispatcher.Dispatch(ctx, command.SetQuality(q)); err != nil {
			log.Warn().Err(err).Msg("failed to request quality")
		}
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		select {
		case <-ctx.Done():
			return dispatcher.Dispatch(context.Background(), command.ForceLeave("shutdown"))
		case <-terminated:
			return nil
		}
	})
	return eg.Wait()
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xenn00/livestream-service/config"
	"github.com/xenn00/livestream-service/internal/queue"
	archive_repo "github.com/xenn00/livestream-service/internal/repo/archive"
	room_repo "github.com/xenn00/livestream-service/internal/repo/room"
	teacher_repo "github.com/xenn00/livestream-service/internal/repo/teacher"
	"github.com/xenn00/livestream-service/internal/routers"
	room_service "github.com/xenn00/livestream-service/internal/use-case/room-case"
	"github.com/xenn00/livestream-service/internal/websocket"
	"github.com/xenn00/livestream-service/internal/worker"
	"github.com/xenn00/livestream-service/state"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// initialize the application
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appState, err := state.InitAppState(ctx, stop)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application state")
	}
	defer appState.Close()

	hub := websocket.NewHub()
	sessions := websocket.NewSessionDirectory()
	log.Info().Msg("Signaling hub initialized")

	roomStore := room_repo.NewMemoryRoomStore()
	teachers := teacher_repo.NewTeacherRepo(appState)
	producer := queue.NewProducer(appState.Redis)
	roomService := room_service.NewRoomService(roomStore, teachers, producer)

	authFunc := websocket.JWTWebSocketAuth(appState.JwtSecret.Public)
	wsHandler := websocket.NewWSHandler(hub, sessions, roomService, authFunc)
	log.Info().Msg("Websocket handler initialized")

	r := routers.NewRouter(appState, roomService, wsHandler, hub, sessions)

	archive := archive_repo.NewArchiveRepo(appState.Mongo, config.Conf.DATABASE.Mongo.Database)
	workerPool := worker.NewWorkerPool(appState.Redis, archive, config.Conf.ARCHIVE.Workers)
	workerPool.Start(ctx)

	server := &http.Server{
		Addr:         config.Conf.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// serve the application
	go func() {
		log.Info().Msgf("Starting server on http://localhost%s", config.Conf.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(fmt.Sprintf("ListenAndServe failed: %v", err))
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown initiated...")
	// gracefully shutdown the application
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("Graceful shutdown failed: %v\n", err)
	} else {
		fmt.Println("Server exited gracefully.")
	}
	hub.Close()
	workerPool.Wait()
}

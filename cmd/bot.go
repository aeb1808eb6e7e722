package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/configs"
	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/configs/loader/dotEnvLoader"
	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/delivery/telegram"
	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/repository/accounts"
	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/repository/cachedRepo"
	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/repository/gemini"
	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/repository/pixabay"
	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/repository/redisCache"
	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/repository/sessionStates"
	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/usecase"
	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/pkg/logger"
	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/pkg/prometheus"
)

func main() {

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	loader := dotEnvLoader.DotEnvLoader{}
	cfg := configs.MustLoad(loader)
	log := logger.NewLogger(cfg)

	prometheus.Init()
	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":8080", nil)
	log.Info("Starting prometheus at port 8080")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	accountStore, err := accounts.NewRepo(cfg, log)
	if err != nil {
		log.Error("failed to open account store", "error", err)
		os.Exit(1)
	}
	defer accountStore.Close()

	var images domain.ImageRepository = pixabay.NewRepo(cfg, log)
	if cfg.RD.Host != "" {
		images = cachedRepo.NewCachedRepo(images, redisCache.NewRepo(cfg), log)
	}

	contentProvider, err := gemini.NewRepo(ctx, cfg, log)
	if err != nil {
		log.Error("failed to create content provider", "error", err)
		os.Exit(1)
	}

	catalog := usecase.NewThemeCatalog()
	synthesizer := usecase.NewSynthesizer(contentProvider, log)
	fetcher := usecase.NewIllustrationFetcher(images, log)
	composer := usecase.NewDeckComposer(fetcher, cfg.Decks.Dir, log)
	states := sessionStates.NewSessionStates()

	bot, err := telegram.NewBot(ctx, cfg, states, accountStore, synthesizer, composer,
		catalog, usecase.RenderPreview, log)
	if err != nil {
		log.Error("failed to create bot", "error", err)
		os.Exit(1)
	}
	log.Info("Starting bot")
	go bot.Run()
	<-done
	log.Info("Shutting down bot")

	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	bot.Stop(ctx)
	log.Info("Service stopped")
}

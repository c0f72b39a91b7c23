package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/jonboulle/clockwork"

	"github.com/MarcGrol/flashcart/lib/myconfig"
	"github.com/MarcGrol/flashcart/lib/mylog"
	"github.com/MarcGrol/flashcart/lib/mypublisher"
	"github.com/MarcGrol/flashcart/lib/mypubsub"
	"github.com/MarcGrol/flashcart/lib/myrandom"
	"github.com/MarcGrol/flashcart/lib/mystore"
	"github.com/MarcGrol/flashcart/lib/mytime"
	"github.com/MarcGrol/flashcart/lib/myuuid"
	"github.com/MarcGrol/flashcart/services/cart"
	"github.com/MarcGrol/flashcart/services/catalog"
	"github.com/MarcGrol/flashcart/services/promotion"
	"github.com/MarcGrol/flashcart/services/promotion/promotionevents"
	"github.com/MarcGrol/flashcart/services/shop"
	"github.com/MarcGrol/flashcart/services/warmup"
)

func main() {
	c, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := mylog.New("main")

	cfg, err := myconfig.FromEnv()
	if err != nil {
		log.Fatalf("Error reading configuration: %s", err)
	}

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}
	randomizer := myrandom.New(cfg.PromotionSeed)

	// catalog and cart share one transactor so every stock movement is atomic
	tx := mystore.NewTransactor()
	productStore, productStoreCleanup, err := mystore.New[catalog.Product](c, tx)
	if err != nil {
		log.Fatalf("Error creating product store: %s", err)
	}
	defer productStoreCleanup()

	lineStore, lineStoreCleanup, err := mystore.New[cart.Line](c, tx)
	if err != nil {
		log.Fatalf("Error creating cart store: %s", err)
	}
	defer lineStoreCleanup()

	productCatalog, err := catalog.New(c, productStore, catalog.DefaultSeed())
	if err != nil {
		log.Fatalf("Error seeding catalog: %s", err)
	}
	shoppingCart := cart.New(lineStore, productCatalog)

	broker := mypublisher.NewBroker(nower, uuider)
	promotions := promotion.NewService(productCatalog, broker, randomizer)

	router := mux.NewRouter()

	warmup.NewService(productCatalog).RegisterEndpoints(c, router)

	shopService := shop.NewService(productCatalog, shoppingCart, promotions, broker, nower, cfg.NotificationBacklog)
	shopService.RegisterEndpoints(c, router)
	err = shopService.Subscribe(c)
	if err != nil {
		log.Fatalf("Error subscribing shop to promotions: %s", err)
	}

	relay, relayCleanup := startRelay(c, cfg, broker)
	defer relayCleanup()

	scheduler := promotion.NewScheduler(promotions, clockwork.NewRealClock(), randomizer, promotion.Config{
		LightningInterval: cfg.LightningInterval,
		LightningMaxDelay: cfg.LightningMaxDelay,
		SuggestedInterval: cfg.SuggestedInterval,
		SuggestedMaxDelay: cfg.SuggestedMaxDelay,
	})
	scheduler.Start(c)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}
	go func() {
		logger.Log(c, "", mylog.SeverityInfo, "Starting webserver on port %s (try http://localhost:%s/api/products)", cfg.Port, cfg.Port)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log(c, "", mylog.SeverityError, "Error running webserver on port %s: %s", cfg.Port, err)
			stop()
		}
	}()

	<-c.Done()
	logger.Log(context.Background(), "", mylog.SeverityInfo, "Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		logger.Log(shutdownCtx, "", mylog.SeverityError, "Error shutting down webserver: %s", err)
	}
	scheduler.Stop()
	if relay != nil {
		relay.Wait()
	}
}

// startRelay forwards promotion events to Cloud Pub/Sub when running on Google Cloud
func startRelay(c context.Context, cfg myconfig.Config, broker *mypublisher.Broker) (*mypublisher.Relay, func()) {
	if cfg.ProjectID == "" {
		return nil, func() {}
	}

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub client: %s", err)
	}

	relay := mypublisher.NewRelay(broker, pubsub)
	err = relay.Start(c, promotionevents.TopicName, cfg.NotificationBacklog)
	if err != nil {
		pubsubCleanup()
		log.Fatalf("Error starting relay to topic %s: %s", promotionevents.TopicName, err)
	}

	return relay, pubsubCleanup
}

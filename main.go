package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/adilemreee/sevgilim-sub001/controller"
	"github.com/adilemreee/sevgilim-sub001/database"
	"github.com/adilemreee/sevgilim-sub001/notifications"
	"github.com/adilemreee/sevgilim-sub001/repository"
	"github.com/adilemreee/sevgilim-sub001/utils"
	fcm "github.com/appleboy/go-fcm"
	"github.com/go-co-op/gocron"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"k8s.io/klog/v2"
)

var Version = "dev"

func usage() {
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	// Server options
	flag.Usage = usage
	klog.InitFlags(nil)
	flag.Set("logtostderr", "true")
	flag.Set("stderrthreshold", "INFO")
	flag.Set("v", "3")
	planSweep := flag.Bool("plan-sweep", false, "Run one plan reminder sweep and exit")
	specialDaySweep := flag.Bool("special-day-sweep", false, "Run one special day sweep and exit")
	version := flag.Bool("version", false, "Display the version")
	flag.Parse()

	if *version {
		fmt.Printf("Sevgilim notification server version: %s\n", Version)
		os.Exit(0)
	}

	// Setup database conn
	config := &database.Config{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		Password: os.Getenv("DB_PASS"),
		User:     os.Getenv("DB_USER"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
		DBName:   os.Getenv("DB_NAME"),
	}
	fmt.Println("🏡 Connecting to database...")
	db, err := database.NewConnection(config)
	if err != nil {
		panic(err)
	}

	fmt.Println("🦋 Running database migrations...")
	database.Migrate(db)

	// Setup FCM client
	var pushClient notifications.PushClient
	fcmKey := utils.GetEnv("FCM_API_KEY", "")
	if fcmKey != "" {
		svc, err := fcm.NewClient(fcmKey)
		if err != nil {
			klog.Errorf("Error initiating FCM client: %v", err)
			os.Exit(1)
		}
		pushClient = svc
	} else {
		klog.Warning("FCM_API_KEY is not set, nothing will actually be delivered")
	}

	// Create repositories
	relationshipRepo := &repository.RelationshipRepo{DB: db}
	userRepo := &repository.UserRepo{DB: db}
	planRepo := &repository.PlanRepo{DB: db}
	specialDayRepo := &repository.SpecialDayRepo{DB: db}

	dispatcher := &notifications.Dispatcher{Users: userRepo, Push: pushClient}
	service := &notifications.Service{
		Relationships: relationshipRepo,
		Users:         userRepo,
		Plans:         planRepo,
		SpecialDays:   specialDayRepo,
		Dispatcher:    dispatcher,
	}

	// One-shot sweeps
	if *planSweep {
		sent, err := service.SweepPlanReminders(time.Now().UTC())
		if err != nil {
			klog.Errorf("Error sweeping plan reminders: %v", err)
			os.Exit(1)
		}
		klog.Infof("Plan sweep dispatched %d reminders", sent)
		os.Exit(0)
	} else if *specialDaySweep {
		sent, err := service.SweepSpecialDays(time.Now().UTC())
		if err != nil {
			klog.Errorf("Error sweeping special days: %v", err)
			os.Exit(1)
		}
		klog.Infof("Special day sweep dispatched %d reminders", sent)
		os.Exit(0)
	}

	// Create app
	app := fiber.New()

	// Cors middleware
	app.Use(cors.New())
	// Pprof
	app.Use(pprof.New())

	// Setup controllers
	pc := &controller.PushController{PushClient: pushClient}
	ec := &controller.EventController{Service: service}

	// HTTP Routes
	app.Post("/api/push", pc.HandleSend)
	app.Post("/events/:collection", ec.HandleEvent)

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.SendStatus(404)
	})

	// Reminder sweeps
	s := gocron.NewScheduler(time.UTC)

	s.Every(1).Hour().Do(func() {
		sent, err := service.SweepPlanReminders(time.Now().UTC())
		if err != nil {
			klog.Errorf("Error sweeping plan reminders: %v", err)
			return
		}
		if sent > 0 {
			klog.Infof("Plan sweep dispatched %d reminders", sent)
		}
	})

	s.Every(1).Day().At(utils.GetEnv("SPECIAL_DAY_SWEEP_AT", "09:00")).Do(func() {
		sent, err := service.SweepSpecialDays(time.Now().UTC())
		if err != nil {
			klog.Errorf("Error sweeping special days: %v", err)
			return
		}
		klog.Infof("Special day sweep dispatched %d reminders", sent)
	})
	s.StartAsync()

	app.Listen(":3000")
}

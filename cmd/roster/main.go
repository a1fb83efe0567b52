package main

import (
	"time"

	"dienstplan/internal/config"
	"dienstplan/internal/repository"
	"dienstplan/internal/roster"
	"dienstplan/internal/service"
	"dienstplan/pkg/notify"
	"dienstplan/pkg/workerpool"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.Get()

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal("Failed to get database instance:", err)
	}

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logrus.Infof("Warning: Failed to enable foreign keys: %v", err)
	}

	userRepo, err := repository.NewGormUserRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create user repository")
	}
	orderRepo, err := repository.NewGormUserOrderRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create user order repository")
	}
	entryRepo, err := repository.NewGormShiftEntryRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create shift entry repository")
	}
	typeRepo, err := repository.NewGormShiftTypeRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create shift type repository")
	}
	vacationRepo, err := repository.NewGormVacationRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create vacation repository")
	}
	wunschfreiRepo, err := repository.NewGormWunschfreiRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create wunschfrei repository")
	}
	lockRepo, err := repository.NewGormLockRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create lock repository")
	}
	configRepo, err := repository.NewGormConfigRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create config repository")
	}
	activityRepo, err := repository.NewGormActivityRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create activity repository")
	}
	resetRepo, err := repository.NewGormPasswordResetRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create password reset repository")
	}

	if err := typeRepo.SeedDefaults(); err != nil {
		logrus.WithError(err).Fatal("Failed to seed shift types")
	}
	types, err := typeRepo.GetAll()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load shift types")
	}
	registry := roster.NewRegistry(types, logrus.StandardLogger())

	holidayService := service.NewHolidayService(configRepo)
	if err := holidayService.MigrateLegacyFile("holidays.json"); err != nil {
		logrus.Infof("Warning: holiday migration failed: %v", err)
	}

	userService := service.NewUserService(userRepo, orderRepo, resetRepo, activityRepo)
	entitlementService := service.NewEntitlementService(configRepo, userRepo, activityRepo)
	rosterService := service.NewRosterService(
		registry, userRepo, entryRepo, vacationRepo, wunschfreiRepo, lockRepo, activityRepo)
	printService := service.NewPrintService(holidayService)

	var notifyClient *notify.Client
	if cfg.TelegramToken != "" {
		notifyClient, err = notify.NewClient(cfg.TelegramToken)
		if err != nil {
			logrus.Infof("Warning: notification transport unavailable: %v", err)
		}
	}
	notifier := service.NewNotifierService(activityRepo, notifyClient, cfg.AdminChatIDs)

	now := time.Now()
	snap, err := rosterService.LoadMonth(now.Year(), int(now.Month()), cfg.IncludeHidden)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load current month")
	}
	logrus.WithFields(logrus.Fields{
		"users":      len(snap.Users),
		"violations": len(snap.ViolationCells()),
		"locked":     snap.MonthLocked,
	}).Info("Current month loaded")

	if all, err := userService.UsersForMonth(now.Year(), int(now.Month()), true); err == nil && len(all) > len(snap.Users) {
		logrus.Infof("%d users hidden from the roster view", len(all)-len(snap.Users))
	}

	if changed, err := entitlementService.BatchUpdate(now); err != nil {
		logrus.Infof("Warning: entitlement batch update failed: %v", err)
	} else if changed > 0 {
		logrus.Infof("Entitlement updated for %d users", changed)
	}

	// Blocking side work runs off the main loop; callbacks fire on Poll.
	pool := workerpool.New(2)
	pool.Submit(func() (interface{}, error) {
		return printService.WriteMonth(rosterService.DataManager())
	}, func(result interface{}, err error) {
		if err != nil {
			logrus.WithError(err).Error("Failed to write print view")
			return
		}
		logrus.Infof("Print view written to %s", result)
	})
	pool.Submit(func() (interface{}, error) {
		return nil, notifier.Flush()
	}, func(_ interface{}, err error) {
		if err != nil {
			logrus.Infof("Warning: notification flush failed: %v", err)
		}
	})
	pool.Close()
	pool.Poll()

	if err := sqlDB.Close(); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}
}

package main

import (
	"fmt"
	"time"

	"github.com/parcelx-next/internal/config"
	"github.com/parcelx-next/internal/constants"
	"github.com/parcelx-next/internal/logger"
	"github.com/parcelx-next/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 初始化默认管理员
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	now := time.Now()
	delivery1 := now.AddDate(0, 0, 3)
	delivery2 := now.AddDate(0, 0, 5)
	delivery3 := now.AddDate(0, 0, -1)

	orders := []models.Order{
		{
			TrackingID: "PXDEMO00001",
			Customer: models.Customer{
				Name:    "Alice Johnson",
				Email:   "alice@example.com",
				Phone:   "+1-202-555-0143",
				Address: "221B Maple Street, Springfield, IL",
			},
			Shipping: models.Shipping{
				From:             "Chicago, IL",
				To:               "Springfield, IL",
				ExpectedDelivery: &delivery1,
			},
			Package: models.Package{
				Category:      constants.PackageCategoryElectronics,
				Weight:        "2.4 kg",
				Dimensions:    "30x20x15 cm",
				DeclaredValue: "350 USD",
			},
			Timeline: models.Timeline{
				{
					Status:    constants.OrderStatusPlaced,
					Date:      now.AddDate(0, 0, -2),
					Time:      "9:15:00 AM",
					Location:  "Chicago, IL",
					Completed: true,
				},
				{
					Status:    constants.OrderStatusPickedUp,
					Date:      now.AddDate(0, 0, -1),
					Time:      "2:40:00 PM",
					Location:  "Chicago, IL",
					Completed: false,
					Notes:     "Picked up by courier",
				},
			},
		},
		{
			TrackingID: "PXDEMO00002",
			Customer: models.Customer{
				Name:    "Bob Martinez",
				Email:   "bob@example.com",
				Phone:   "+1-415-555-0188",
				Address: "500 Ocean Drive, San Diego, CA",
			},
			Shipping: models.Shipping{
				From:             "San Francisco, CA",
				To:               "San Diego, CA",
				ExpectedDelivery: &delivery2,
			},
			Package: models.Package{
				Category:            constants.PackageCategoryFragile,
				Weight:              "1.1 kg",
				Dimensions:          "25x25x25 cm",
				DeclaredValue:       "120 USD",
				SpecialInstructions: "Handle with care, glassware inside",
			},
			Timeline: models.Timeline{
				{
					Status:    constants.OrderStatusPlaced,
					Date:      now.AddDate(0, 0, -1),
					Time:      "11:05:00 AM",
					Location:  "San Francisco, CA",
					Completed: true,
				},
			},
		},
		{
			TrackingID: "PXDEMO00003",
			Customer: models.Customer{
				Name:    "Carol Chen",
				Email:   "carol@example.com",
				Phone:   "+1-646-555-0102",
				Address: "88 Harbor Road, Boston, MA",
			},
			Shipping: models.Shipping{
				From:             "New York, NY",
				To:               "Boston, MA",
				ExpectedDelivery: &delivery3,
			},
			Package: models.Package{
				Category:      constants.PackageCategoryDocuments,
				Weight:        "0.3 kg",
				Dimensions:    "32x24x2 cm",
				DeclaredValue: "0 USD",
			},
			Timeline: models.Timeline{
				{
					Status:    constants.OrderStatusPlaced,
					Date:      now.AddDate(0, 0, -4),
					Time:      "8:00:00 AM",
					Location:  "New York, NY",
					Completed: true,
				},
				{
					Status:    constants.OrderStatusInTransit,
					Date:      now.AddDate(0, 0, -3),
					Time:      "6:30:00 PM",
					Location:  "Hartford, CT",
					Completed: false,
				},
				{
					Status:    constants.OrderStatusOutForDelivery,
					Date:      now.AddDate(0, 0, -1),
					Time:      "7:45:00 AM",
					Location:  "Boston, MA",
					Completed: false,
				},
				{
					Status:    constants.OrderStatusDelivered,
					Date:      now.AddDate(0, 0, -1),
					Time:      "3:20:00 PM",
					Location:  "Boston, MA",
					Completed: true,
					Notes:     "Left at front desk",
					ProofOfDelivery: &models.ProofOfDelivery{
						Kind:    "text",
						Content: "Signed by C. Chen at front desk",
					},
				},
			},
		},
	}

	for _, order := range orders {
		var existing models.Order
		if err := models.DB.Where("tracking_id = ?", order.TrackingID).First(&existing).Error; err != nil {
			if err := models.DB.Create(&order).Error; err != nil {
				stdLog.Printf("Failed to create order %s: %v", order.TrackingID, err)
			} else {
				stdLog.Printf("Created order: %s", order.TrackingID)
			}
		} else {
			stdLog.Printf("Order already exists: %s", order.TrackingID)
		}
	}

	fmt.Println("\n✅ Demo data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Orders (placed / in transit / delivered)")
	fmt.Println("- Default admin account")
}

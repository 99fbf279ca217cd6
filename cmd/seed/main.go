package main

import (
	"github.com/motorstore/internal/config"
	"github.com/motorstore/internal/logger"
	"github.com/motorstore/internal/models"

	"github.com/shopspring/decimal"
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

	// 添加分类
	categories := []models.Category{
		{
			NameJSON: models.JSON(map[string]interface{}{
				"zh-CN": "轿车",
				"zh-TW": "轎車",
				"en-US": "Sedans",
			}),
			Slug:      "sedans",
			SortOrder: 100,
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"zh-CN": "SUV",
				"zh-TW": "SUV",
				"en-US": "SUVs",
			}),
			Slug:      "suvs",
			SortOrder: 90,
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"zh-CN": "超级跑车",
				"zh-TW": "超級跑車",
				"en-US": "Supercars",
			}),
			Slug:      "supercars",
			SortOrder: 80,
		},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"sedans", "suvs", "supercars"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}
	sedansID := categoryIDs["sedans"]
	suvsID := categoryIDs["suvs"]
	supercarsID := categoryIDs["supercars"]

	// 添加在售车型
	products := []models.Product{
		{
			TitleJSON: models.JSON(map[string]interface{}{
				"zh-CN": "宝马 M3 雷霆版",
				"zh-TW": "寶馬 M3 雷霆版",
				"en-US": "BMW M3 Competition",
			}),
			Slug: "bmw-m3",
			DescriptionJSON: models.JSON(map[string]interface{}{
				"zh-CN": "510 马力直六双涡轮，赛道与街道兼得",
				"zh-TW": "510 馬力直六雙渦輪，賽道與街道兼得",
				"en-US": "510 hp twin-turbo inline-six, built for track and street alike",
			}),
			ContentJSON: models.JSON(map[string]interface{}{
				"zh-CN": "搭载 S58 3.0T 直列六缸双涡轮增压发动机，匹配 8 速 M Steptronic 变速箱，零百加速 3.9 秒。标配自适应 M 悬架与碳纤维内饰组件。",
				"zh-TW": "搭載 S58 3.0T 直列六缸雙渦輪增壓發動機，匹配 8 速 M Steptronic 變速箱，零百加速 3.9 秒。標配自適應 M 懸架與碳纖維內飾組件。",
				"en-US": "Powered by the S58 3.0-liter twin-turbo inline-six paired with an 8-speed M Steptronic transmission, 0-100 km/h in 3.9 seconds. Adaptive M suspension and carbon-fiber trim come standard.",
			}),
			SpecsJSON: models.JSON(map[string]interface{}{
				"engine":       "3.0L I6 Twin-Turbo",
				"power_hp":     510,
				"torque_nm":    650,
				"transmission": "8AT",
				"drivetrain":   "RWD",
			}),
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(89900)),
			PriceCurrency: "USD",
			CategoryID:    sedansID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1617531653332-bd46c24f2068?w=800",
			}),
			Tags:      models.StringArray([]string{"Performance", "Sedan", "Twin-Turbo"}),
			SortOrder: 100,
			IsActive:  true,
		},
		{
			TitleJSON: models.JSON(map[string]interface{}{
				"zh-CN": "奥迪 RS6 旅行版",
				"zh-TW": "奧迪 RS6 旅行版",
				"en-US": "Audi RS6 Avant",
			}),
			Slug: "audi-rs6-avant",
			DescriptionJSON: models.JSON(map[string]interface{}{
				"zh-CN": "600 马力 V8 旅行车，全家出行也要快",
				"zh-TW": "600 馬力 V8 旅行車，全家出行也要快",
				"en-US": "A 600 hp V8 wagon that hauls the family fast",
			}),
			ContentJSON: models.JSON(map[string]interface{}{
				"zh-CN": "4.0T V8 双涡轮配 48V 轻混系统，quattro 全时四驱，后备厢容积最大 1680 升。",
				"zh-TW": "4.0T V8 雙渦輪配 48V 輕混系統，quattro 全時四驅，後備廂容積最大 1680 升。",
				"en-US": "A 4.0-liter twin-turbo V8 with 48V mild-hybrid assistance, quattro all-wheel drive, and up to 1,680 liters of cargo space.",
			}),
			SpecsJSON: models.JSON(map[string]interface{}{
				"engine":       "4.0L V8 Twin-Turbo",
				"power_hp":     600,
				"torque_nm":    800,
				"transmission": "8AT",
				"drivetrain":   "AWD",
			}),
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(119500.50)),
			PriceCurrency: "USD",
			CategoryID:    sedansID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1606220838315-056192d5e927?w=800",
			}),
			Tags:      models.StringArray([]string{"Wagon", "V8", "Quattro"}),
			SortOrder: 95,
			IsActive:  true,
		},
		{
			TitleJSON: models.JSON(map[string]interface{}{
				"zh-CN": "保时捷 911 Turbo S",
				"zh-TW": "保時捷 911 Turbo S",
				"en-US": "Porsche 911 Turbo S",
			}),
			Slug: "porsche-911-turbo-s",
			DescriptionJSON: models.JSON(map[string]interface{}{
				"zh-CN": "650 马力水平对置六缸，2.7 秒破百",
				"zh-TW": "650 馬力水平對置六缸，2.7 秒破百",
				"en-US": "650 hp flat-six, 0-100 km/h in 2.7 seconds",
			}),
			ContentJSON: models.JSON(map[string]interface{}{
				"zh-CN": "3.8T 水平对置六缸双涡轮，8 速 PDK 双离合，标配后轮转向与陶瓷复合制动系统。",
				"zh-TW": "3.8T 水平對置六缸雙渦輪，8 速 PDK 雙離合，標配後輪轉向與陶瓷複合制動系統。",
				"en-US": "A 3.8-liter twin-turbo flat-six with an 8-speed PDK, rear-axle steering and ceramic composite brakes as standard.",
			}),
			SpecsJSON: models.JSON(map[string]interface{}{
				"engine":       "3.8L Flat-6 Twin-Turbo",
				"power_hp":     650,
				"torque_nm":    800,
				"transmission": "8DCT",
				"drivetrain":   "AWD",
			}),
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(203500)),
			PriceCurrency: "USD",
			CategoryID:    supercarsID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1503376780353-7e6692767b70?w=800",
			}),
			Tags:      models.StringArray([]string{"Supercar", "Flat-6", "PDK"}),
			SortOrder: 90,
			IsActive:  true,
		},
		{
			TitleJSON: models.JSON(map[string]interface{}{
				"zh-CN": "兰博基尼 Urus",
				"zh-TW": "藍寶堅尼 Urus",
				"en-US": "Lamborghini Urus",
			}),
			Slug: "lamborghini-urus",
			DescriptionJSON: models.JSON(map[string]interface{}{
				"zh-CN": "666 马力超级 SUV，蛮牛血统",
				"zh-TW": "666 馬力超級 SUV，蠻牛血統",
				"en-US": "A 666 hp super SUV with raging-bull DNA",
			}),
			ContentJSON: models.JSON(map[string]interface{}{
				"zh-CN": "4.0T V8 双涡轮，Torsen 中央差速器全时四驱，六种驾驶模式覆盖铺装路与沙地。",
				"zh-TW": "4.0T V8 雙渦輪，Torsen 中央差速器全時四驅，六種駕駛模式覆蓋鋪裝路與沙地。",
				"en-US": "A 4.0-liter twin-turbo V8, Torsen center differential all-wheel drive, and six drive modes from tarmac to sand.",
			}),
			SpecsJSON: models.JSON(map[string]interface{}{
				"engine":       "4.0L V8 Twin-Turbo",
				"power_hp":     666,
				"torque_nm":    850,
				"transmission": "8AT",
				"drivetrain":   "AWD",
			}),
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(229495)),
			PriceCurrency: "USD",
			CategoryID:    suvsID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1519245659620-e859806a8d3b?w=800",
			}),
			Tags:      models.StringArray([]string{"SUV", "V8", "Super SUV"}),
			SortOrder: 85,
			IsActive:  true,
		},
		{
			TitleJSON: models.JSON(map[string]interface{}{
				"zh-CN": "梅赛德斯-AMG G63",
				"zh-TW": "梅賽德斯-AMG G63",
				"en-US": "Mercedes-AMG G63",
			}),
			Slug: "mercedes-amg-g63",
			DescriptionJSON: models.JSON(map[string]interface{}{
				"zh-CN": "585 马力方盒子，三把差速锁",
				"zh-TW": "585 馬力方盒子，三把差速鎖",
				"en-US": "The 585 hp box on wheels with three locking differentials",
			}),
			ContentJSON: models.JSON(map[string]interface{}{
				"zh-CN": "4.0T V8 双涡轮，9 速自动变速箱，梯形车架配三把机械差速锁，越野与豪华兼备。",
				"zh-TW": "4.0T V8 雙渦輪，9 速自動變速箱，梯形車架配三把機械差速鎖，越野與豪華兼備。",
				"en-US": "A 4.0-liter twin-turbo V8, 9-speed automatic, ladder frame and three mechanical locking differentials, equal parts off-roader and luxury cruiser.",
			}),
			SpecsJSON: models.JSON(map[string]interface{}{
				"engine":       "4.0L V8 Twin-Turbo",
				"power_hp":     585,
				"torque_nm":    850,
				"transmission": "9AT",
				"drivetrain":   "4WD",
			}),
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(179000)),
			PriceCurrency: "USD",
			CategoryID:    suvsID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1520031441872-265e4ff70366?w=800",
			}),
			Tags:      models.StringArray([]string{"SUV", "Off-Road", "Luxury"}),
			SortOrder: 80,
			IsActive:  true,
		},
		{
			TitleJSON: models.JSON(map[string]interface{}{
				"zh-CN": "法拉利 296 GTB",
				"zh-TW": "法拉利 296 GTB",
				"en-US": "Ferrari 296 GTB",
			}),
			Slug: "ferrari-296-gtb",
			DescriptionJSON: models.JSON(map[string]interface{}{
				"zh-CN": "830 马力 V6 插混，跃马新纪元",
				"zh-TW": "830 馬力 V6 插混，躍馬新紀元",
				"en-US": "An 830 hp V6 plug-in hybrid, a new era for the prancing horse",
			}),
			ContentJSON: models.JSON(map[string]interface{}{
				"zh-CN": "3.0T 120 度夹角 V6 与电机组成插混系统，综合 830 马力，纯电续航 25 公里。",
				"zh-TW": "3.0T 120 度夾角 V6 與電機組成插混系統，綜合 830 馬力，純電續航 25 公里。",
				"en-US": "A 120-degree 3.0-liter turbo V6 paired with an electric motor for a combined 830 hp and 25 km of electric-only range.",
			}),
			SpecsJSON: models.JSON(map[string]interface{}{
				"engine":       "3.0L V6 Turbo Hybrid",
				"power_hp":     830,
				"torque_nm":    740,
				"transmission": "8DCT",
				"drivetrain":   "RWD",
			}),
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(338255)),
			PriceCurrency: "USD",
			CategoryID:    supercarsID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1592198084033-aade902d1aae?w=800",
			}),
			Tags:      models.StringArray([]string{"Supercar", "Hybrid", "V6"}),
			SortOrder: 75,
			IsActive:  true,
		},
		{
			TitleJSON: models.JSON(map[string]interface{}{
				"zh-CN": "柯尼塞格 Jesko（预展）",
				"zh-TW": "柯尼塞格 Jesko（預展）",
				"en-US": "Koenigsegg Jesko (Preview)",
			}),
			Slug: "koenigsegg-jesko",
			DescriptionJSON: models.JSON(map[string]interface{}{
				"zh-CN": "1600 马力旗舰，暂未开放订购",
				"zh-TW": "1600 馬力旗艦，暫未開放訂購",
				"en-US": "The 1,600 hp flagship, not yet open for orders",
			}),
			SpecsJSON: models.JSON(map[string]interface{}{
				"engine":       "5.0L V8 Twin-Turbo",
				"power_hp":     1600,
				"torque_nm":    1500,
				"transmission": "9LST",
				"drivetrain":   "RWD",
			}),
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(3000000)),
			PriceCurrency: "USD",
			CategoryID:    supercarsID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1544636331-e26879cd4d9b?w=800",
			}),
			Tags:      models.StringArray([]string{"Hypercar", "Preview"}),
			SortOrder: 70,
			IsActive:  false,
		},
	}

	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", product.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}
	}

	stdLog.Printf("Seed completed")
}

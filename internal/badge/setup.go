package badge

import (
	"fmt"

	"github.com/HabitGarden/habit-quest-backend/internal/platform/database"
	"github.com/HabitGarden/habit-quest-backend/internal/platform/metadata"
	"gorm.io/gorm/clause"
)

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&CatalogEntry{}, &Award{}); err != nil {
		return fmt.Errorf("无法迁移badge表: %w", err)
	}
	fmt.Println("Badge数据库表迁移成功。")
	return nil
}

// seedCatalog 将代码中的目录播种到SQLite镜像表。
// 只有目录版本变化时才重写，播种使用upsert保证可重复执行。
func seedCatalog() error {
	seeded, err := metadata.GetCatalogSeedVersion(database.DB)
	if err != nil {
		return fmt.Errorf("无法读取目录播种版本: %w", err)
	}
	if seeded == CatalogVersion {
		return nil
	}

	for _, def := range Catalog() {
		entry := CatalogEntry{
			Code:      def.Code,
			Category:  def.Category,
			Kind:      int(def.Kind),
			Threshold: def.Threshold,
			Tier:      def.Tier,
		}
		err := database.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"category", "kind", "threshold", "tier"}),
		}).Create(&entry).Error
		if err != nil {
			return fmt.Errorf("无法播种徽章目录 (%s): %w", def.Code, err)
		}
	}

	if err := metadata.SetCatalogSeedVersion(database.DB, CatalogVersion); err != nil {
		return fmt.Errorf("无法记录目录播种版本: %w", err)
	}
	fmt.Printf("徽章目录播种成功，版本 %s，共 %d 条规则。\n", CatalogVersion, len(Catalog()))
	return nil
}

// WarmupCache 从SQLite重建Redis中每个用户的已获徽章镜像
func WarmupCache() error {
	var awards []Award
	if err := database.DB.Find(&awards).Error; err != nil {
		return fmt.Errorf("无法从SQLite读取徽章授予记录: %w", err)
	}

	// 先清掉旧的镜像键，避免残留已失效用户的数据
	keys, err := database.RDB.Keys(database.Ctx, EarnedSetKeyPrefix+"*").Result()
	if err != nil {
		return fmt.Errorf("无法枚举已获徽章镜像键: %w", err)
	}

	pipe := database.RDB.Pipeline()
	if len(keys) > 0 {
		pipe.Del(database.Ctx, keys...)
	}
	for _, a := range awards {
		pipe.SAdd(database.Ctx, earnedSetKey(a.UserID), a.Code)
	}
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("重建已获徽章镜像失败: %w", err)
	}

	fmt.Printf("成功重建已获徽章镜像，共 %d 条授予记录。\n", len(awards))
	return nil
}

// PrimeCachedDB 是badge模块的初始化总入口
func PrimeCachedDB() error {
	if err := migrateDB(); err != nil {
		return err
	}
	if err := seedCatalog(); err != nil {
		return err
	}
	if err := WarmupCache(); err != nil {
		return err
	}
	return nil
}

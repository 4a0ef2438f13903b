package metadata

const (
	// CatalogSeedVersionKey 记录徽章目录最近一次写入SQLite镜像时的版本号。
	// 版本号变化时，启动流程会重新播种目录表。
	CatalogSeedVersionKey = "catalog_seed_version"

	// LastCacheRebuildAtKey 记录最近一次Redis派生缓存重建完成的时间 (RFC3339)。
	LastCacheRebuildAtKey = "last_cache_rebuild_at"
)

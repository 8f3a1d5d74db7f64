package config

type Catalog struct {
	FeedPath string `env:"CATALOG_FEED_PATH" envDefault:"resources/items.json"`
}

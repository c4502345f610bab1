package config

type Config struct {
	FulfillmentAddr string
}

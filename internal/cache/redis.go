package cache

import (
	"log"
	"os"

	"github.com/go-redis/redis/v8"
)

func NewRedis() *redis.Client {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
		log.Println("REDIS_URL not set, using localhost:6379")
	}

	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
}

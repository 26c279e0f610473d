// Package redis connects to the Redis server that backs the redis storage
// backend of the simulator.
//
// Connect parses the connection URL, then pings the server with retries so
// that a simulator started next to a Redis container waits for it instead of
// failing on the first refused connection:
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err // errors.Is(err, redis.ErrRedisNotReady)
//	}
//	defer client.Close()
//
//	storage, err := file.NewRedisStorage(client, file.WithRedisKeyPrefix(cfg.KeyPrefix))
//
// Config fields are read from REDIS_* environment variables through
// github.com/caarlos0/env tags.
package redis

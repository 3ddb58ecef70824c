// Package container shares constructed singletons across packages so the
// router can auto-wire modules at startup.
package container

import (
	"cloud.google.com/go/storage"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/bookbuddy/bookbuddy-api/config"
	"github.com/bookbuddy/bookbuddy-api/internal/infrastructure/kv"
	"github.com/bookbuddy/bookbuddy-api/internal/infrastructure/localstore"
	"github.com/bookbuddy/bookbuddy-api/pkg/helpers"
)

var (
	cfg         *config.Config
	logger      *logrus.Logger
	byteStore   kv.Store
	store       *localstore.Store
	redisClient *redis.Client
	gcsClient   *storage.Client
	jwtManager  *helpers.JWTManager
	rabbitPub   *helpers.RabbitPublisher
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }

func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }

func SetByteStore(s kv.Store) { byteStore = s }
func GetByteStore() kv.Store  { return byteStore }

func SetStore(s *localstore.Store) { store = s }
func GetStore() *localstore.Store  { return store }

func SetRedis(r *redis.Client) { redisClient = r }
func GetRedis() *redis.Client  { return redisClient }

func SetGCS(s *storage.Client) { gcsClient = s }
func GetGCS() *storage.Client  { return gcsClient }

func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }

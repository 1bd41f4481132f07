package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/base/database/mongoclient"
	"github.com/color-xyz/goapi/base/database/redisclient"
	"github.com/color-xyz/goapi/base/log"
	"github.com/color-xyz/goapi/base/metrics"
	bValidator "github.com/color-xyz/goapi/base/validator"
	"github.com/color-xyz/goapi/domain"
	dListing "github.com/color-xyz/goapi/domain/listing"
	mmiddleware "github.com/color-xyz/goapi/middleware"
	"github.com/color-xyz/goapi/service/chain"
	"github.com/color-xyz/goapi/service/chain/contract"
	"github.com/color-xyz/goapi/service/notifier"
	"github.com/color-xyz/goapi/service/query"
	"github.com/color-xyz/goapi/service/redis"
	account_delivery "github.com/color-xyz/goapi/stores/account/delivery/http"
	account_repository "github.com/color-xyz/goapi/stores/account/repository"
	account_usecase "github.com/color-xyz/goapi/stores/account/usecase"
	activity_delivery "github.com/color-xyz/goapi/stores/activity/delivery/http"
	activity_repository "github.com/color-xyz/goapi/stores/activity/repository"
	activity_usecase "github.com/color-xyz/goapi/stores/activity/usecase"
	auth_delivery "github.com/color-xyz/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/color-xyz/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/color-xyz/goapi/stores/auth/usecase"
	hc_delivery "github.com/color-xyz/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/color-xyz/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/color-xyz/goapi/stores/healthcheck/usecase"
	listing_delivery "github.com/color-xyz/goapi/stores/listing/delivery/http"
	listing_repository "github.com/color-xyz/goapi/stores/listing/repository"
	listing_usecase "github.com/color-xyz/goapi/stores/listing/usecase"
	statistic_delivery "github.com/color-xyz/goapi/stores/statistic/delivery/http"
	statistic_repository "github.com/color-xyz/goapi/stores/statistic/repository"
	statistic_usecase "github.com/color-xyz/goapi/stores/statistic/usecase"
)

func init() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "config file path")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	// init Redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	mmiddleware.SetupCache(redisCache)

	// init chain service
	networks := viper.Sub("networks")
	keys := networks.AllSettings()
	rpcs := make(map[int32]string)
	for k := range keys {
		chainId := networks.GetInt32(fmt.Sprintf("%s.chainId", k))
		rpcUrl := networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
		rpcs[chainId] = rpcUrl
	}
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrls: rpcs,
	})
	if err != nil {
		context.WithField("err", err).Warn("chainService started with error")
	}

	marketChainId := networks.GetInt32("main.chainId")
	operatorKey, err := crypto.HexToECDSA(viper.GetString("marketplace.operatorKey"))
	if err != nil {
		context.WithField("err", err).Panic("invalid marketplace operator key")
	}
	operatorAddress := domain.Address(crypto.PubkeyToAddress(operatorKey.PublicKey).Hex()).ToLower()

	rpcClient, err := ethclient.Dial(rpcs[marketChainId])
	if err != nil {
		context.WithField("err", err).Warn("rpc dial failed, transfers will not settle")
	}
	nftPort := contract.NewNftPort(&contract.NftPortCfg{
		ChainId:     marketChainId,
		OperatorKey: operatorKey,
		Rpc:         rpcClient,
		Chain:       chainService,
	})

	// init event notifier
	var emitter dListing.EventEmitter
	if botKey := viper.GetString("discord.botKey"); botKey != "" {
		emitter, err = notifier.NewDiscordNotifier(&notifier.DiscordNotifierCfg{
			BotKey:    botKey,
			ChannelId: viper.GetString("discord.channelId"),
			Workers:   viper.GetInt("discord.workers"),
		})
		if err != nil {
			context.WithField("err", err).Panic("discord notifier init failed")
		}
	} else {
		emitter = notifier.NewNoopNotifier()
	}

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	listingRepo := listing_repository.NewListingRepo(q)
	accountRepo := account_repository.New(q, redisCache)
	ledger := account_repository.NewLedger(q)
	activityRepo := activity_repository.New(q)
	statisticRepo := statistic_repository.New(q)

	hc := hc_usecase.New(hcRepo)
	statistic := statistic_usecase.New(statisticRepo)
	activity := activity_usecase.New(activityRepo)
	account := account_usecase.New(&account_usecase.AccountUseCaseCfg{
		Repo:   accountRepo,
		Ledger: ledger,
	})
	auth := auth_usecase.New(&auth_usecase.AuthUseCaseCfg{
		JwtSecret:    viper.GetString("auth.jwtSecret"),
		SignatureMsg: viper.GetString("auth.signatureMsg"),
		Account:      account,
	})
	listing := listing_usecase.New(&listing_usecase.ListingUseCaseCfg{
		Repo:      listingRepo,
		Nft:       nftPort,
		Ledger:    ledger,
		Activity:  activity,
		Statistic: statistic,
		Emitter:   emitter,
		Operator:  operatorAddress,
	})

	authMiddleware := auth_middleware.New(auth)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth)
	account_delivery.New(e, authMiddleware, account)
	listing_delivery.New(e, authMiddleware, listing)
	activity_delivery.New(e, activity)
	statistic_delivery.New(e, statistic)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}

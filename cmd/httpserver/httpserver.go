// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/go-petr/paper-trade/internal/accountdelivery"
	"github.com/go-petr/paper-trade/internal/accountrepo"
	"github.com/go-petr/paper-trade/internal/accountservice"
	"github.com/go-petr/paper-trade/internal/collabdelivery"
	"github.com/go-petr/paper-trade/internal/collabrepo"
	"github.com/go-petr/paper-trade/internal/collabservice"
	"github.com/go-petr/paper-trade/internal/holdingrepo"
	"github.com/go-petr/paper-trade/internal/middleware"
	"github.com/go-petr/paper-trade/internal/portfoliodelivery"
	"github.com/go-petr/paper-trade/internal/portfoliorepo"
	"github.com/go-petr/paper-trade/internal/portfolioservice"
	"github.com/go-petr/paper-trade/internal/quotecache"
	"github.com/go-petr/paper-trade/internal/quoteclient"
	"github.com/go-petr/paper-trade/internal/quotedelivery"
	"github.com/go-petr/paper-trade/internal/sessiondelivery"
	"github.com/go-petr/paper-trade/internal/sessionrepo"
	"github.com/go-petr/paper-trade/internal/sessionservice"
	"github.com/go-petr/paper-trade/internal/userdelivery"
	"github.com/go-petr/paper-trade/internal/userrepo"
	"github.com/go-petr/paper-trade/internal/userservice"
	"github.com/go-petr/paper-trade/internal/watchlistdelivery"
	"github.com/go-petr/paper-trade/internal/watchlistrepo"
	"github.com/go-petr/paper-trade/internal/watchlistservice"
	"github.com/go-petr/paper-trade/pkg/assetpkg"
	"github.com/go-petr/paper-trade/pkg/configpkg"
	"github.com/go-petr/paper-trade/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	holdingRepo := holdingrepo.NewRepoPGS(conn)
	portfolioRepo := portfoliorepo.NewRepoPGS(conn)
	collabRepo := collabrepo.NewRepoPGS(conn)
	watchlistRepo := watchlistrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	quotes := quotecache.New(
		quoteclient.New(config),
		redis.NewClient(&redis.Options{Addr: config.QuoteCacheAddress}),
		config.QuoteCacheTTL,
	)

	accountService := accountservice.New(accountRepo)
	userService := userservice.New(userRepo, userrepo.NewSignupPGS(conn), config.StartingBalance)
	portfolioService := portfolioservice.New(portfolioRepo, holdingRepo, accountService, quotes)
	collabService := collabservice.New(collabRepo, userService, quotes,
		config.CollabRequestExpiry, config.CollabSplitSettlement)
	watchlistService := watchlistservice.New(watchlistRepo, quotes)

	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)
	if err != nil {
		return nil, errors.New("cannot initialize session service")
	}

	userHandler := userdelivery.NewHandler(userService, sessionService)
	accountHandler := accountdelivery.NewHandler(accountService)
	portfolioHandler := portfoliodelivery.NewHandler(portfolioService)
	collabHandler := collabdelivery.NewHandler(collabService)
	watchlistHandler := watchlistdelivery.NewHandler(watchlistService)
	quoteHandler := quotedelivery.NewHandler(quotes)
	sessionHandler := sessiondelivery.NewHandler(sessionService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/users", userHandler.Create)
	engine.POST("/users/login", userHandler.Login)
	engine.POST("/sessions", sessionHandler.RenewAccessToken)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(sessionService.TokenMaker))

	authRoutes.GET("/accounts", accountHandler.Get)

	authRoutes.GET("/portfolio", portfolioHandler.Portfolio)
	authRoutes.POST("/trades/buy", portfolioHandler.Buy)
	authRoutes.POST("/trades/sell", portfolioHandler.Sell)

	authRoutes.POST("/collaborations", collabHandler.Propose)
	authRoutes.GET("/collaborations", collabHandler.List)
	authRoutes.POST("/collaborations/:id/accept", collabHandler.Accept)
	authRoutes.POST("/collaborations/:id/reject", collabHandler.Reject)

	authRoutes.POST("/watchlist", watchlistHandler.Add)
	authRoutes.GET("/watchlist", watchlistHandler.List)
	authRoutes.DELETE("/watchlist", watchlistHandler.Remove)

	authRoutes.GET("/quotes/:class/:symbol", quoteHandler.Latest)
	authRoutes.GET("/quotes/:class/:symbol/history", quoteHandler.History)
	authRoutes.GET("/quotes/search", quoteHandler.Search)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("assetclass", assetpkg.ValidClass)
		if err != nil {
			return nil, errors.New("cannot register asset class validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}

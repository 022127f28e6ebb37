package http

import (
	"net/http"
	"time"

	"biblio/internal/config"
	"biblio/internal/domain"
	"biblio/internal/infra/auth/guard"
	"biblio/internal/infra/auth/policy"
	"biblio/internal/infra/db"
	"biblio/internal/infra/ratelimit"
	"biblio/internal/infra/token"
	"biblio/internal/usecase"

	"github.com/gin-gonic/gin"
)

type Server struct {
	cfg config.Config
	r   *gin.Engine

	policies *policy.Registry
	guard    *guard.Guard

	loginUC    *usecase.Login
	registerUC *usecase.RegisterUser
	loanSvc    *usecase.LoanService

	users    UserStore
	profiles ProfileStore
	books    BookStore
	copies   CopyStore
	loans    LoanStore

	store       *db.Store
	initErr     error
	rateLimiter domain.RateLimiter

	rateLimitRequests   int
	rateLimitWindow     time.Duration
	rateLimitFailClosed bool
}

func NewServer(cfg config.Config, store *db.Store) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{cfg: cfg, store: store, r: r, policies: policy.NewRegistry()}
	s.initDeps()
	s.declarePolicies()
	s.routes()
	return s
}

// ServerDeps lets tests and alternative wiring inject collaborators
// directly instead of building them from config.
type ServerDeps struct {
	Verifier   domain.TokenVerifier
	Signer     domain.TokenSigner
	Principals domain.PrincipalStore

	Users    UserStore
	UserAuth usecase.UserFinder
	Writer   usecase.UserWriter
	Profiles ProfileStore
	Books    BookStore
	Copies   CopyStore
	Loans    LoanStore
	LoanSvc  *usecase.LoanService

	RateLimiter domain.RateLimiter
}

func NewServerWithDeps(cfg config.Config, deps ServerDeps) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		cfg:      cfg,
		r:        r,
		policies: policy.NewRegistry(),
		users:    deps.Users,
		profiles: deps.Profiles,
		books:    deps.Books,
		copies:   deps.Copies,
		loans:    deps.Loans,
		loanSvc:  deps.LoanSvc,
	}
	s.guard = guard.New(s.policies, deps.Verifier, deps.Principals)
	s.loginUC = &usecase.Login{Users: deps.UserAuth, Signer: deps.Signer}
	s.registerUC = &usecase.RegisterUser{Users: deps.Writer, BcryptCost: cfg.BcryptCost}
	s.initRateLimit(deps.RateLimiter)
	s.declarePolicies()
	s.routes()
	return s
}

func (s *Server) initDeps() {
	codec, err := token.NewCodec(s.cfg.JWTSecret, s.cfg.TokenTTL())
	if err != nil {
		s.initErr = err
		return
	}

	var gdb = s.store.DB
	userRepo := db.NewUserRepository(gdb)
	profileRepo := db.NewProfileRepository(gdb)
	bookRepo := db.NewBookRepository(gdb)
	copyRepo := db.NewCopyRepository(gdb)
	loanRepo := db.NewLoanRepository(gdb)

	s.users = userRepo
	s.profiles = profileRepo
	s.books = bookRepo
	s.copies = copyRepo
	s.loans = loanRepo

	s.guard = guard.New(s.policies, codec, userRepo)
	s.loginUC = &usecase.Login{Users: userRepo, Signer: codec}
	s.registerUC = &usecase.RegisterUser{Users: userRepo, BcryptCost: s.cfg.BcryptCost}
	s.loanSvc = &usecase.LoanService{Loans: loanRepo, Copies: copyRepo}

	s.initRateLimit(nil)
}

func (s *Server) initRateLimit(override domain.RateLimiter) {
	if override != nil {
		s.rateLimiter = override
	}
	if s.rateLimiter == nil && s.cfg.RateLimitRequests > 0 {
		if s.cfg.RedisAddr != "" {
			if limiter, err := ratelimit.NewRedisLimiter(s.cfg.RedisAddr, s.cfg.RedisPassword, s.cfg.RedisDB, nil); err == nil {
				s.rateLimiter = limiter
			}
		}
		if s.rateLimiter == nil {
			s.rateLimiter = ratelimit.NewMemoryLimiter(ratelimit.MemoryLimiterConfig{
				MaxKeys: s.cfg.RateLimitMaxKeys,
			})
		}
	}
	s.rateLimitRequests = s.cfg.RateLimitRequests
	if s.cfg.RateLimitWindowSeconds > 0 {
		s.rateLimitWindow = time.Duration(s.cfg.RateLimitWindowSeconds) * time.Second
	}
	s.rateLimitFailClosed = s.cfg.RateLimitFailClosed
}

// declarePolicies is the single place access rules are attached to
// operations. Operations left undeclared require authentication but no
// particular role.
func (s *Server) declarePolicies() {
	s.policies.Declare("auth.login", policy.Public())
	s.policies.Declare("users.register", policy.Public())
	s.policies.Declare("books.list", policy.Public())
	s.policies.Declare("books.get", policy.Public())

	s.policies.Declare("users.list", policy.AdminOnly())
	s.policies.Declare("users.get", policy.AdminOnly())
	s.policies.Declare("users.update", policy.AdminOnly())
	s.policies.Declare("users.delete", policy.AdminOnly())
	s.policies.Declare("books.create", policy.AdminOnly())
	s.policies.Declare("books.update", policy.AdminOnly())
	s.policies.Declare("books.delete", policy.AdminOnly())
	s.policies.Declare("copies.create", policy.AdminOnly())
	s.policies.Declare("copies.update", policy.AdminOnly())
	s.policies.Declare("copies.delete", policy.AdminOnly())
	s.policies.Declare("loans.delete", policy.AdminOnly())

	s.policies.Declare("copies.list_by_book", policy.ForRoles(domain.RoleBasic))
	s.policies.Declare("loans.list", policy.ForRoles(domain.RoleBasic))
	s.policies.Declare("loans.get", policy.ForRoles(domain.RoleBasic))
	s.policies.Declare("loans.create", policy.ForRoles(domain.RoleBasic))
	s.policies.Declare("loans.return", policy.ForRoles(domain.RoleBasic))

	// profiles.create and profiles.update stay undeclared: any
	// authenticated principal may manage profile data.
}

func (s *Server) routes() {
	s.r.GET("/healthz", func(c *gin.Context) {
		dbMode := "no-db"
		if s.store != nil && s.store.DB != nil {
			dbMode = "db"
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "mode": dbMode})
	})

	v1 := s.r.Group("/v1")
	{
		v1.POST("/auth/login", s.guarded("auth.login", s.handleLogin))

		v1.POST("/users", s.guarded("users.register", s.handleRegisterUser))
		v1.GET("/users", s.guarded("users.list", s.handleListUsers))
		v1.GET("/users/:id", s.guarded("users.get", s.handleGetUser))
		v1.PATCH("/users/:id", s.guarded("users.update", s.handleUpdateUser))
		v1.DELETE("/users/:id", s.guarded("users.delete", s.handleDeleteUser))

		v1.POST("/users/:id/profiles", s.guarded("profiles.create", s.handleCreateProfile))
		v1.PATCH("/users/:id/profiles", s.guarded("profiles.update", s.handleUpdateProfile))

		v1.GET("/books", s.guarded("books.list", s.handleListBooks))
		v1.GET("/books/:id", s.guarded("books.get", s.handleGetBook))
		v1.POST("/books", s.guarded("books.create", s.handleCreateBook))
		v1.PATCH("/books/:id", s.guarded("books.update", s.handleUpdateBook))
		v1.DELETE("/books/:id", s.guarded("books.delete", s.handleDeleteBook))

		v1.GET("/books/:id/copies", s.guarded("copies.list_by_book", s.handleListCopies))
		v1.POST("/books/:id/copies", s.guarded("copies.create", s.handleCreateCopy))
		v1.PATCH("/copies/:id", s.guarded("copies.update", s.handleUpdateCopy))
		v1.DELETE("/copies/:id", s.guarded("copies.delete", s.handleDeleteCopy))

		v1.GET("/loans", s.guarded("loans.list", s.handleListLoans))
		v1.GET("/loans/:id", s.guarded("loans.get", s.handleGetLoan))
		v1.POST("/loans", s.guarded("loans.create", s.handleCreateLoan))
		v1.POST("/loans/:id/return", s.guarded("loans.return", s.handleReturnLoan))
		v1.DELETE("/loans/:id", s.guarded("loans.delete", s.handleDeleteLoan))
	}

	s.r.NoRoute(s.handleNoRoute)
}

func (s *Server) Run() error {
	if s.initErr != nil {
		return s.initErr
	}
	return s.r.Run(s.cfg.HTTPAddr)
}

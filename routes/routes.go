package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/hackathon-platform/docs"
	"github.com/Dosada05/hackathon-platform/handlers"
	"github.com/Dosada05/hackathon-platform/middleware"
	"github.com/Dosada05/hackathon-platform/models"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Organization *handlers.OrganizationHandler
	Hackathon    *handlers.HackathonHandler
	Registration *handlers.RegistrationHandler
	Team         *handlers.TeamHandler
	Invite       *handlers.InviteHandler
	Submission   *handlers.SubmissionHandler
	Dashboard    *handlers.DashboardHandler
	WebSocket    *handlers.WebSocketHandler
}

type Options struct {
	JWTSecret   string
	CORSOrigins []string
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	authenticate := middleware.Authenticate(opts.JWTSecret)
	optionalAuth := middleware.OptionalAuthenticate(opts.JWTSecret)

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
	})

	router.Route("/users", func(r chi.Router) {
		r.Get("/{userID}", h.User.GetUserByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/me", h.User.GetMe)
			r.Patch("/me", h.User.UpdateMe)
			r.Get("/me/invitations", h.User.ListMyInvitations)
		})
	})

	router.Route("/organizations", func(r chi.Router) {
		r.Get("/{orgID}", h.Organization.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.With(middleware.Authorize(models.RoleOrganizer, models.RoleAdmin)).Post("/", h.Organization.Create)
			r.Post("/{orgID}/admins", h.Organization.AddAdmin)
		})
	})

	router.Route("/hackathons", func(r chi.Router) {
		r.Get("/", h.Hackathon.List)
		r.With(authenticate, middleware.Authorize(models.RoleOrganizer, models.RoleAdmin)).Post("/", h.Hackathon.Create)

		r.Route("/{hackathonID}", func(r chi.Router) {
			// публичные, но организатор видит больше
			r.Group(func(r chi.Router) {
				r.Use(optionalAuth)
				r.Get("/", h.Hackathon.Get)
				r.Get("/leaderboard", h.Hackathon.Leaderboard)
				r.Get("/teams", h.Team.ListTeams)
			})

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Patch("/", h.Hackathon.Update)
				r.Post("/status", h.Hackathon.ChangeStatus)
				r.Post("/publish", h.Hackathon.Publish)
				r.Post("/judges", h.Hackathon.AddJudge)
				r.Get("/stats", h.Dashboard.Stats)

				r.Get("/registration", h.Registration.Status)
				r.Post("/registration", h.Registration.Register)
				r.Delete("/registration", h.Registration.Unregister)
				r.Post("/pending/{userID}/approve", h.Registration.Approve)
				r.Post("/pending/{userID}/reject", h.Registration.Reject)

				r.Post("/teams", h.Team.CreateTeam)
			})
		})
	})

	router.Route("/teams/{teamID}", func(r chi.Router) {
		r.With(optionalAuth).Get("/", h.Team.GetTeamByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/members", h.Team.AddMember)
			r.Delete("/members/{userID}", h.Team.RemoveMember)
			r.Post("/leader", h.Team.TransferLeadership)
			r.Post("/notes", h.Team.AddNote)
			r.Post("/withdraw", h.Team.Withdraw)
			r.Post("/disqualify", h.Team.Disqualify)
			r.Post("/awards", h.Team.AwardPrize)
			r.Post("/logo", h.Team.UploadLogo)

			r.Post("/invitations", h.Invite.SendInvitation)
			r.Post("/invitations/accept", h.Invite.AcceptInvitation)
			r.Post("/invitations/decline", h.Invite.DeclineInvitation)

			r.Put("/submission", h.Submission.UpdateSubmission)
			r.Post("/submission/finalize", h.Submission.FinalizeSubmission)
			r.Post("/submission/media", h.Submission.UploadMedia)

			r.Post("/scores", h.Submission.ScoreTeam)
		})
	})

	router.With(authenticate).Post("/invitations/{token}/accept", h.Invite.AcceptByToken)

	router.With(optionalAuth).Get("/ws/hackathons/{hackathonID}", h.WebSocket.ServeWs)
}

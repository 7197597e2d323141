package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/coopworks/api-membership/internal/auth"
	"github.com/coopworks/api-membership/internal/barangay"
	"github.com/coopworks/api-membership/internal/branch"
	"github.com/coopworks/api-membership/internal/fieldworker"
	"github.com/coopworks/api-membership/internal/geo"
	"github.com/coopworks/api-membership/internal/logging"
	"github.com/coopworks/api-membership/internal/member"
	"github.com/coopworks/api-membership/internal/notification"
	"github.com/coopworks/api-membership/internal/payment"
	"github.com/coopworks/api-membership/internal/program"
	"github.com/coopworks/api-membership/internal/reminder"
	"github.com/coopworks/api-membership/internal/revenue"
	"github.com/coopworks/api-membership/internal/user"
	"github.com/coopworks/api-membership/internal/utils/db"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	database, err := db.Connect()
	if err != nil {
		log.Fatal("could not connect to database: ", err)
	}

	if err := database.AutoMigrate(
		&user.User{},
		&branch.Branch{},
		&fieldworker.FieldWorker{},
		&program.Program{},
		&program.ProgramAgeBracket{},
		&member.Member{},
		&payment.Payment{},
		&revenue.Revenue{},
		&barangay.BarangayMember{},
		&notification.Notification{},
	); err != nil {
		log.Fatal("migration failed: ", err)
	}

	// Handlers
	userHandler := user.NewHandler(database)
	branchHandler := branch.NewHandler(database)
	workerHandler := fieldworker.NewHandler(database)
	memberHandler := member.NewHandler(database)
	paymentHandler := payment.NewHandler(database)
	programHandler := program.NewHandler(database)
	revenueHandler := revenue.NewHandler(database)
	barangayHandler := barangay.NewHandler(database)
	notificationHandler := notification.NewHandler(database)
	geoHandler := geo.NewHandler()

	scheduler := reminder.NewScheduler(database, notification.NewGatewaySMS())
	reminderHandler := reminder.NewHandler(scheduler)
	scheduler.Start()

	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/api/auth/login", userHandler.Login).Methods("POST")
	r.HandleFunc("/api/bootstrap", userHandler.Bootstrap).Methods("POST")

	// Everything else requires a token
	api := r.PathPrefix("/api").Subrouter()
	api.Use(auth.Middleware)

	adminOnly := auth.RequireRole(auth.RoleAdmin)
	staffWrite := auth.RequireRole(auth.RoleAdmin, auth.RoleStaff)
	managerWrite := auth.RequireRole(auth.RoleAdmin, auth.RoleAccountManager)

	// Users
	api.HandleFunc("/me", userHandler.Me).Methods("GET")
	api.Handle("/users", adminOnly(http.HandlerFunc(userHandler.List))).Methods("GET")
	api.Handle("/users", adminOnly(http.HandlerFunc(userHandler.Create))).Methods("POST")
	api.Handle("/users/{id}", adminOnly(http.HandlerFunc(userHandler.Delete))).Methods("DELETE")

	// Branches
	api.HandleFunc("/branches", branchHandler.List).Methods("GET")
	api.HandleFunc("/branches/{id}", branchHandler.Get).Methods("GET")
	api.Handle("/branches", adminOnly(http.HandlerFunc(branchHandler.Create))).Methods("POST")
	api.Handle("/branches/{id}", adminOnly(http.HandlerFunc(branchHandler.Update))).Methods("PUT")
	api.Handle("/branches/{id}", adminOnly(http.HandlerFunc(branchHandler.Delete))).Methods("DELETE")

	// Field workers
	api.HandleFunc("/field-workers", workerHandler.List).Methods("GET")
	api.HandleFunc("/field-workers/{id}", workerHandler.Get).Methods("GET")
	api.Handle("/field-workers", staffWrite(http.HandlerFunc(workerHandler.Create))).Methods("POST")
	api.Handle("/field-workers/{id}", staffWrite(http.HandlerFunc(workerHandler.Update))).Methods("PUT")
	api.Handle("/field-workers/{id}", staffWrite(http.HandlerFunc(workerHandler.Delete))).Methods("DELETE")

	// Members
	api.HandleFunc("/members", memberHandler.List).Methods("GET")
	api.HandleFunc("/members/{id}", memberHandler.Get).Methods("GET")
	api.Handle("/members", staffWrite(http.HandlerFunc(memberHandler.Create))).Methods("POST")
	api.Handle("/members/{id}", staffWrite(http.HandlerFunc(memberHandler.Update))).Methods("PUT")
	api.Handle("/members/{id}", staffWrite(http.HandlerFunc(memberHandler.Delete))).Methods("DELETE")
	api.Handle("/members/{id}/membership-fee", staffWrite(http.HandlerFunc(memberHandler.RecordMembershipFee))).Methods("POST")

	// Payments
	api.HandleFunc("/members/{id}/payments", paymentHandler.ListByMember).Methods("GET")
	api.Handle("/members/{id}/payments", staffWrite(http.HandlerFunc(paymentHandler.Record))).Methods("POST")
	api.HandleFunc("/payments/{id}", paymentHandler.Get).Methods("GET")

	// Programs and age brackets
	api.HandleFunc("/programs", programHandler.List).Methods("GET")
	api.HandleFunc("/programs/{id}", programHandler.Get).Methods("GET")
	api.HandleFunc("/programs/{id}/brackets/resolve", programHandler.ResolveBracket).Methods("GET")
	api.Handle("/programs", adminOnly(http.HandlerFunc(programHandler.Create))).Methods("POST")
	api.Handle("/programs/{id}", adminOnly(http.HandlerFunc(programHandler.Update))).Methods("PUT")
	api.Handle("/programs/{id}", adminOnly(http.HandlerFunc(programHandler.Delete))).Methods("DELETE")
	api.Handle("/programs/{id}/brackets", adminOnly(http.HandlerFunc(programHandler.AddBracket))).Methods("POST")
	api.Handle("/programs/{id}/brackets/{bracketId}", adminOnly(http.HandlerFunc(programHandler.DeleteBracket))).Methods("DELETE")

	// Revenue
	api.HandleFunc("/revenue", revenueHandler.List).Methods("GET")
	api.HandleFunc("/revenue/total", revenueHandler.Total).Methods("GET")
	api.Handle("/revenue", managerWrite(http.HandlerFunc(revenueHandler.Create))).Methods("POST")
	api.Handle("/revenue/{id}", managerWrite(http.HandlerFunc(revenueHandler.Update))).Methods("PUT")
	api.Handle("/revenue/{id}", managerWrite(http.HandlerFunc(revenueHandler.Delete))).Methods("DELETE")

	// Barangay member counts
	api.HandleFunc("/barangay-members", barangayHandler.List).Methods("GET")
	api.Handle("/barangay-members/adjust", adminOnly(http.HandlerFunc(barangayHandler.Adjust))).Methods("POST")

	// Notifications and reminders
	api.HandleFunc("/notifications", notificationHandler.List).Methods("GET")
	api.HandleFunc("/notifications/overdue", reminderHandler.Overdue).Methods("GET")
	api.Handle("/notifications/reminders/run", staffWrite(http.HandlerFunc(reminderHandler.Run))).Methods("POST")
	api.Handle("/notifications/{id}", staffWrite(http.HandlerFunc(notificationHandler.Delete))).Methods("DELETE")
	api.HandleFunc("/members/{id}/notifications", notificationHandler.ListByMember).Methods("GET")

	// Geographic code proxy
	api.HandleFunc("/geo/{path:.*}", geoHandler.Proxy).Methods("GET")

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	addr := ":" + port()
	slog.Info("server listening", "addr", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

func port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8080"
}

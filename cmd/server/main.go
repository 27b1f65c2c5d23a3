package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"rentafacil/internal/api"
	"rentafacil/internal/auth"
	"rentafacil/internal/repository"
	"rentafacil/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	reservationRepo := repository.NewReservationRepository(database)
	customerRepo := repository.NewCustomerRepository(database)
	vehicleRepo := repository.NewVehicleRepository(database)
	reportRepo := repository.NewReportRepository(database)
	adminAuthRepo := repository.NewAdminAuthRepository(database)

	sender := service.NewSenderService()
	bookingSvc := service.NewBookingService(reservationRepo, customerRepo, vehicleRepo, sender)
	vehicleSvc := service.NewVehicleService(vehicleRepo)
	customerSvc := service.NewCustomerService(customerRepo, reservationRepo)
	reportSvc := service.NewReportService(reportRepo)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo)

	reservationHandler := api.NewReservationHandler(bookingSvc)
	vehicleHandler := api.NewVehicleHandler(vehicleSvc)
	customerHandler := api.NewCustomerHandler(customerSvc)
	reportHandler := api.NewReportHandler(reportSvc)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/login", adminAuthHandler.Login).Methods("POST")
	r.HandleFunc("/api/availability", reservationHandler.CheckAvailability).Methods("POST")
	r.HandleFunc("/api/reservations", reservationHandler.CreateReservation).Methods("POST")
	r.HandleFunc("/api/reservations/{confirmationNumber}", reservationHandler.GetReservation).Methods("GET")
	r.HandleFunc("/api/reservations/{id}/confirm", reservationHandler.ConfirmReservation).Methods("POST")
	r.HandleFunc("/api/reservations/{id}/cancel", reservationHandler.CancelReservation).Methods("POST")
	r.HandleFunc("/api/vehicles", vehicleHandler.ListVehicles).Methods("GET")
	r.HandleFunc("/api/vehicles/availability", vehicleHandler.SearchAvailable).Methods("GET")
	r.HandleFunc("/api/vehicles/{id}", vehicleHandler.GetVehicle).Methods("GET")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware)
	admin.HandleFunc("/auth/register", adminAuthHandler.CreateAdmin).Methods("POST")
	admin.HandleFunc("/reservations", reservationHandler.SearchReservations).Methods("GET")
	admin.HandleFunc("/vehicles", vehicleHandler.CreateVehicle).Methods("POST")
	admin.HandleFunc("/vehicles/{id}", vehicleHandler.UpdateVehicle).Methods("PUT")
	admin.HandleFunc("/vehicles/{id}", vehicleHandler.DeleteVehicle).Methods("DELETE")
	admin.HandleFunc("/customers", customerHandler.ListCustomers).Methods("GET")
	admin.HandleFunc("/customers/{id}", customerHandler.GetCustomer).Methods("GET")
	admin.HandleFunc("/customers/{id}/reservations", customerHandler.GetCustomerReservations).Methods("GET")
	admin.HandleFunc("/reports/daily", reportHandler.GetDailyReports).Methods("GET")
	admin.HandleFunc("/reports/monthly", reportHandler.GetMonthlyReport).Methods("GET")

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "*"
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{corsOrigin}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, cors(r)))
}

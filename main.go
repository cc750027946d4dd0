package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"creditsystem/config"
	"creditsystem/controllers"
	"creditsystem/database"
	"creditsystem/middleware"
	"creditsystem/services"
	"creditsystem/utils"
	"github.com/gorilla/mux"
)

// healthHandler отвечает на проверку работоспособности сервиса
func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// metricsHandler возвращает снимок текущих метрик
func metricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(utils.GetMetrics().GetMetricsSnapshot())
}

func main() {
	// Инициализируем конфигурацию
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Инициализируем подключение к базе данных
	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer db.Close()

	// Инициализируем сервис email
	emailService := services.NewEmailService(cfg)

	// Создаем роутер
	router := mux.NewRouter()
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.LoggingMiddleware)

	// Инициализируем контроллеры
	customerController := controllers.NewCustomerController(db)
	creditController := controllers.NewCreditController(db, emailService)

	// Служебные маршруты
	router.HandleFunc("/api/health", healthHandler).Methods("GET")
	router.HandleFunc("/api/metrics", metricsHandler).Methods("GET")

	// Маршруты для работы с клиентами
	router.HandleFunc("/api/customers", customerController.CreateCustomer).Methods("POST")
	router.HandleFunc("/api/customers", customerController.UpdateCustomer).Methods("PATCH")
	router.HandleFunc("/api/customers/{id}", customerController.GetCustomer).Methods("GET")
	router.HandleFunc("/api/customers/{id}", customerController.DeleteCustomer).Methods("DELETE")

	// Маршруты для работы с кредитными заявками
	router.HandleFunc("/api/credits", creditController.CreateCredit).Methods("POST")
	router.HandleFunc("/api/credits", creditController.GetCredits).Methods("GET")
	router.HandleFunc("/api/credits/{creditCode}", creditController.GetCredit).Methods("GET")

	// Запускаем сервер
	port := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на порту %s", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}

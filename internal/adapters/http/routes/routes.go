package routes

import (
	"time"

	"tentworks-records/internal/adapters/http/handlers"
	"tentworks-records/internal/adapters/http/middleware"
	"tentworks-records/internal/adapters/persistence/models"
	"tentworks-records/internal/adapters/persistence/repositories"
	"tentworks-records/internal/config"
	"tentworks-records/internal/core/services"
	"tentworks-records/internal/core/vigency"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// catalogMaxAge is how long clients may cache catalog reads
const catalogMaxAge = 5 * time.Minute

// Setup configures all routes for the application and returns the sweep
// scheduler so the caller controls its lifecycle
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) (*services.CronService, error) {
	engine := vigency.NewEngine(cfg.Vigency.Policy(), cfg.Vigency.Location())

	// Initialize repositories
	workerRepo := repositories.NewWorkerRepository(db)
	contractRepo := repositories.NewContractRepository(db)
	affiliationRepo := repositories.NewAffiliationRepository(db)

	courseTypeRepo := repositories.NewCatalogRepository[models.CourseType](db)
	equipmentTypeRepo := repositories.NewCatalogRepository[models.EquipmentType](db)
	documentTypeRepo := repositories.NewCatalogRepository[models.DocumentType](db)

	courseRepo := repositories.NewCourseRepository(db)
	issuanceRepo := repositories.NewEquipmentIssuanceRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)

	supplierRepo := repositories.NewSupplierRepository(db)
	materialRepo := repositories.NewMaterialRepository(db)

	projectRepo := repositories.NewProjectRepository(db)
	activityRepo := repositories.NewActivityRepository(db)
	linkRepo := repositories.NewActivityLinkRepository(db)

	// Initialize services
	workerService := services.NewWorkerService(workerRepo, contractRepo, affiliationRepo)
	courseService := services.NewCourseService(courseRepo, workerRepo, courseTypeRepo, engine)
	equipmentService := services.NewEquipmentService(issuanceRepo, workerRepo, equipmentTypeRepo, engine)
	documentService := services.NewDocumentService(documentRepo, workerRepo, documentTypeRepo, engine)
	vigencyService := services.NewVigencyService(courseRepo, issuanceRepo, documentRepo, engine)
	inventoryService := services.NewInventoryService(supplierRepo, materialRepo)
	projectService := services.NewProjectService(projectRepo, activityRepo, linkRepo)
	dashboardService := services.NewDashboardService(db, vigencyService)
	exportService := services.NewExportService(services.ExportSources{
		Workers:   workerRepo,
		Suppliers: supplierRepo,
		Materials: materialRepo,
		Courses:   courseRepo,
		Issuances: issuanceRepo,
		Documents: documentRepo,
	}, engine)

	notifyService := services.NewNotificationService(cfg.Notify.LineNotifyToken)
	cronService, err := services.NewCronService(vigencyService, notifyService, cfg.Vigency.SweepSpec, cfg.Vigency.Location())
	if err != nil {
		return nil, err
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	workerHandler := handlers.NewWorkerHandler(workerService)
	catalogHandler := handlers.NewCatalogHandler(courseTypeRepo, equipmentTypeRepo, documentTypeRepo)
	courseHandler := handlers.NewCourseHandler(courseService)
	equipmentHandler := handlers.NewEquipmentHandler(equipmentService)
	documentHandler := handlers.NewDocumentHandler(documentService)
	vigencyHandler := handlers.NewVigencyHandler(vigencyService, cronService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	projectHandler := handlers.NewProjectHandler(projectService)
	exportHandler := handlers.NewExportHandler(exportService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Prometheus scrape endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	setupWorkerRoutes(apiV1, workerHandler)
	setupCatalogRoutes(apiV1.Group("/catalogs", middleware.CatalogCache(catalogMaxAge)), catalogHandler)

	// Vigency-tracked records are evaluated against today, never cache them
	noCache := middleware.NoCacheHeaders()
	setupRecordRoutes(apiV1, noCache, courseHandler, equipmentHandler, documentHandler)
	setupVigencyRoutes(apiV1.Group("/vigency", noCache), vigencyHandler)
	apiV1.Get("/dashboard", noCache, dashboardHandler.GetDashboard)

	setupInventoryRoutes(apiV1, inventoryHandler)
	setupProjectRoutes(apiV1.Group("/projects"), projectHandler)
	setupExportRoutes(apiV1.Group("/exports", middleware.ExportRateLimiter()), exportHandler)

	return cronService, nil
}

// setupWorkerRoutes configures worker, contract and affiliation routes
func setupWorkerRoutes(router fiber.Router, handler *handlers.WorkerHandler) {
	workers := router.Group("/workers")
	workers.Get("/", handler.List)
	workers.Post("/", handler.Create)
	workers.Get("/:id", handler.GetByID)
	workers.Put("/:id", handler.Update)
	workers.Delete("/:id", handler.Delete)

	// Contracts
	workers.Get("/:id/contracts", handler.ListContracts)
	workers.Post("/:id/contracts", handler.CreateContract)
	router.Put("/contracts/:id", handler.UpdateContract)
	router.Delete("/contracts/:id", handler.DeleteContract)

	// Affiliation (one per worker)
	workers.Get("/:id/affiliation", handler.GetAffiliation)
	workers.Put("/:id/affiliation", handler.SaveAffiliation)
	workers.Delete("/:id/affiliation", handler.DeleteAffiliation)
}

// setupCatalogRoutes configures master data routes
func setupCatalogRoutes(router fiber.Router, handler *handlers.CatalogHandler) {
	// Course Types
	router.Get("/course-types", handler.ListCourseTypes)
	router.Get("/course-types/:id", handler.GetCourseType)
	router.Post("/course-types", handler.CreateCourseType)
	router.Put("/course-types/:id", handler.UpdateCourseType)
	router.Delete("/course-types/:id", handler.DeleteCourseType)

	// Equipment Types
	router.Get("/equipment-types", handler.ListEquipmentTypes)
	router.Get("/equipment-types/:id", handler.GetEquipmentType)
	router.Post("/equipment-types", handler.CreateEquipmentType)
	router.Put("/equipment-types/:id", handler.UpdateEquipmentType)
	router.Delete("/equipment-types/:id", handler.DeleteEquipmentType)

	// Document Types
	router.Get("/document-types", handler.ListDocumentTypes)
	router.Get("/document-types/:id", handler.GetDocumentType)
	router.Post("/document-types", handler.CreateDocumentType)
	router.Put("/document-types/:id", handler.UpdateDocumentType)
	router.Delete("/document-types/:id", handler.DeleteDocumentType)
}

// setupRecordRoutes configures course, equipment issuance and document routes
func setupRecordRoutes(
	router fiber.Router,
	noCache fiber.Handler,
	courseHandler *handlers.CourseHandler,
	equipmentHandler *handlers.EquipmentHandler,
	documentHandler *handlers.DocumentHandler,
) {
	courses := router.Group("/courses", noCache)
	courses.Get("/", courseHandler.List)
	courses.Post("/", courseHandler.Create)
	courses.Get("/:id", courseHandler.GetByID)
	courses.Put("/:id", courseHandler.Update)
	courses.Delete("/:id", courseHandler.Delete)

	issuances := router.Group("/equipment-issuances", noCache)
	issuances.Get("/", equipmentHandler.List)
	issuances.Post("/", equipmentHandler.Create)
	issuances.Get("/:id", equipmentHandler.GetByID)
	issuances.Put("/:id", equipmentHandler.Update)
	issuances.Patch("/:id/status", equipmentHandler.ChangeStatus)
	issuances.Delete("/:id", equipmentHandler.Delete)

	documents := router.Group("/documents", noCache)
	documents.Get("/", documentHandler.List)
	documents.Post("/", documentHandler.Create)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Put("/:id", documentHandler.Update)
	documents.Delete("/:id", documentHandler.Delete)
}

// setupVigencyRoutes configures expiry tracking routes
func setupVigencyRoutes(router fiber.Router, handler *handlers.VigencyHandler) {
	router.Get("/summary", handler.Summary)
	router.Get("/alerts", handler.Alerts)
	router.Post("/sweep", handler.Sweep)
}

// setupInventoryRoutes configures supplier and material routes
func setupInventoryRoutes(router fiber.Router, handler *handlers.InventoryHandler) {
	suppliers := router.Group("/suppliers")
	suppliers.Get("/", handler.ListSuppliers)
	suppliers.Post("/", handler.CreateSupplier)
	suppliers.Get("/:id", handler.GetSupplier)
	suppliers.Put("/:id", handler.UpdateSupplier)
	suppliers.Delete("/:id", handler.DeleteSupplier)

	materials := router.Group("/materials")
	materials.Get("/", handler.ListMaterials)
	materials.Post("/", handler.CreateMaterial)
	materials.Get("/:id", handler.GetMaterial)
	materials.Put("/:id", handler.UpdateMaterial)
	materials.Delete("/:id", handler.DeleteMaterial)
	materials.Get("/:id/movements", handler.ListMovements)
	materials.Post("/:id/movements", handler.RegisterMovement)
}

// setupProjectRoutes configures project, activity and link routes
func setupProjectRoutes(router fiber.Router, handler *handlers.ProjectHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/:id", handler.GetByID)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
	router.Get("/:id/gantt", handler.Gantt)

	// Activities (Gantt tasks)
	router.Post("/:id/activities", handler.CreateActivity)
	router.Put("/:id/activities/:activityId", handler.UpdateActivity)
	router.Delete("/:id/activities/:activityId", handler.DeleteActivity)

	// Links (dependencies)
	router.Post("/:id/links", handler.CreateLink)
	router.Delete("/:id/links/:linkId", handler.DeleteLink)
}

// setupExportRoutes configures spreadsheet export routes
func setupExportRoutes(router fiber.Router, handler *handlers.ExportHandler) {
	router.Get("/:kind/fields", handler.Fields)
	router.Get("/:kind", handler.Export)
}

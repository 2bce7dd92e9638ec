package services

// ServiceContainer holds the application services.
type ServiceContainer struct {
	DirectoryService DirectoryService
	ReviewService    ReviewService
	StatsService     StatsService
}

package constvars

const (
	ReviewPacketSuccessMessage = "Successfully reviewed claims packet"
	ExportPacketSuccessMessage = "Successfully exported claims packet review"
	HealthCheckSuccessMessage  = "Service is healthy"
)

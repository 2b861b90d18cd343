package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/lines/{week}", handler.GetLines)
	mux.HandleFunc("GET /v1/lines/{week}/workbook", handler.DownloadLinesWorkbook)
	mux.HandleFunc("GET /v1/weeks", handler.GetWeeks)
	mux.HandleFunc("POST /v1/picks", handler.SubmitPicks)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminUploadToken string) {
	mux.Handle("POST /v1/admin/lines", RequireAdminToken(adminUploadToken, http.HandlerFunc(handler.UploadLines)))
}

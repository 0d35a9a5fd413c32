package handler

import (
	"context"
	"net/http"

	"github.com/grupold/bi-marmoraria-api/pkg/apiErrors"
	"github.com/grupold/bi-marmoraria-api/pkg/log"
	"github.com/julienschmidt/httprouter"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeMonthlyRecords = "monthly-records"
	CronJobTypeSessionCleanup = "session-cleanup"
	CronJobTypeAll            = "all"
)

// CronJob é o que o handler precisa de cada agendador
type CronJob interface {
	TriggerManualSync(ctx context.Context) error
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	MonthlyRecordsSync CronJob
	SessionCleanup     CronJob
}

func (s CronJobServices) byType() map[string]CronJob {
	jobs := make(map[string]CronJob)
	if s.MonthlyRecordsSync != nil {
		jobs[CronJobTypeMonthlyRecords] = s.MonthlyRecordsSync
	}
	if s.SessionCleanup != nil {
		jobs[CronJobTypeSessionCleanup] = s.SessionCleanup
	}
	return jobs
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		jobs := services.byType()

		var selected map[string]CronJob
		if cronType == CronJobTypeAll {
			selected = jobs
		} else if job, ok := jobs[cronType]; ok {
			selected = map[string]CronJob{cronType: job}
		} else {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: monthly-records, session-cleanup, all", nil)
			return
		}

		started := make(map[string]string, len(selected))
		for name, job := range selected {
			if err := job.TriggerManualSync(r.Context()); err != nil {
				log.ForContext(r.Context()).WithError(err).WithField("cron_type", name).Warn("Cron job não iniciada")
				started[name] = err.Error()
				continue
			}
			started[name] = "iniciada"
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"message": "Cron job processada",
			"type":    cronType,
			"jobs":    started,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any)
		for name, job := range services.byType() {
			status[name] = job.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}

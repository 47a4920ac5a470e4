package app

import (
	"context"
	"encoding/json"

	"findaccommodation/config"
	"findaccommodation/jobs"
	"findaccommodation/worker"
)

func RegisterJobs(pool *worker.Pool, sender jobs.Sender) {
	pool.RegisterJob(jobs.ContactEmailType, func(ctx context.Context, payload json.RawMessage) (worker.JobHandler, error) {
		contactPayload := new(jobs.ContactEmailPayload)

		err := json.Unmarshal(payload, contactPayload)
		if err != nil {
			return nil, err
		}

		handler := &jobs.ContactEmail{
			Payload: *contactPayload,
			Sender:  sender,
			From:    config.Config.SMTPLogin,
			To:      config.Config.ContactEmail,
			AppName: config.Config.AppName,
		}

		return handler, nil
	})
}

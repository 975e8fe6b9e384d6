package adapters

import (
	"github.com/coreframe-ai/doom-diag/pkg/models/api"
	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
)

func MapPreferencesDomainToApi(p domain.Preferences) api.Preferences {
	settings := make(map[string]string, len(p.Settings))
	for k, v := range p.Settings {
		settings[k] = v
	}
	return api.Preferences{Tool: p.Tool, Settings: settings}
}

func MapPreferencesApiToDomain(p api.Preferences) domain.Preferences {
	settings := make(map[string]string, len(p.Settings))
	for k, v := range p.Settings {
		settings[k] = v
	}
	return domain.Preferences{Tool: p.Tool, Settings: settings}
}

func MapUsageRecordDomainToApi(r domain.UsageRecord) api.UsageRecord {
	return api.UsageRecord{
		Id:       r.ID,
		Tool:     r.Tool,
		FileName: r.FileName,
		RunAt:    r.RunAt,
	}
}

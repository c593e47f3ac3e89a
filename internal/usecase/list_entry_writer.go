package usecase

import (
	"context"

	"github.com/goliatone/go-logger/glog"

	"github.com/xavierca1/ligue-attio-sync/internal/infra/integration/attio"
)

const DefaultSalesList = "sales_3"

// ListEntryWriter garante uma entry por parent na lista de vendas, com o owner configurado.
// Mais de uma entry para o mesmo parent vira KindConflict, nunca sucesso.
type ListEntryWriter struct {
	Gateway CRMGateway
	ListID  string
	Owner   string
	Logger  glog.Logger
}

func NewListEntryWriter(gateway CRMGateway, listID, owner string, logger glog.Logger) *ListEntryWriter {
	if listID == "" {
		listID = DefaultSalesList
	}
	if logger == nil {
		logger = glog.Nop()
	}
	return &ListEntryWriter{
		Gateway: gateway,
		ListID:  listID,
		Owner:   owner,
		Logger:  logger,
	}
}

func (w *ListEntryWriter) Assert(ctx context.Context, input ListEntryInput) (*ListEntryOutput, error) {
	if errs := ValidateListEntryInput(input); len(errs) > 0 {
		return nil, validationFailure(OpAssertListEntry, errs)
	}

	body := attio.AssertListEntryRequest{
		Data: attio.ListEntryData{
			ParentRecordID: input.RecordID,
			ParentObject:   attio.ObjectPeople,
			EntryValues: attio.EntryValues{
				Owner: optional(w.Owner),
			},
		},
	}

	resp, err := w.Gateway.AssertListEntry(ctx, w.ListID, body)
	if err != nil {
		we := classify(OpAssertListEntry, err)
		if we.Kind == KindConflict {
			w.Logger.Warn("⚠️ Attio: mais de uma entry para o mesmo parent",
				"list", w.ListID,
				"record_id", input.RecordID,
			)
		}
		return nil, we
	}

	if resp == nil || resp.Data.ID.EntryID == "" {
		return nil, &WriteError{
			Kind:    KindTransport,
			Op:      OpAssertListEntry,
			Message: "Failed to retrieve list entry ID",
		}
	}

	w.Logger.Info("✅ Attio: entry garantida na lista",
		"list", w.ListID,
		"record_id", input.RecordID,
		"entry_id", resp.Data.ID.EntryID,
	)
	return &ListEntryOutput{EntryID: resp.Data.ID.EntryID}, nil
}

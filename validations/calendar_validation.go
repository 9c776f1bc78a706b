package validations

import (
	"context"

	pkgError "github.com/Saran-Akshintala/autocontent-pro-sub000/pkg/error"
	domainPlanner "github.com/Saran-Akshintala/autocontent-pro-sub000/planner/domain"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func ValidateNavigate(ctx context.Context, request domainPlanner.NavigateRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Direction, validation.Required, validation.In("next", "previous", "today")),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateSetView(ctx context.Context, request domainPlanner.SetViewRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.View, validation.Required, validation.In("month", "week", "day")),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateRescheduleEvent(ctx context.Context, request domainPlanner.RescheduleEventRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.EventID, validation.Required),
		validation.Field(&request.TargetDate, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&request.TargetHour, validation.Min(0), validation.Max(23)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

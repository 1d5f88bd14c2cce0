package middleware

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TracingMiddleware OpenTelemetryトレーシングミドルウェア
func TracingMiddleware() echo.MiddlewareFunc {
	tracer := otel.Tracer("rewards-server")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			// トレースコンテキストの伝播
			propagator := otel.GetTextMapPropagator()
			ctx = propagator.Extract(ctx, propagation.HeaderCarrier(c.Request().Header))

			spanName := c.Request().Method + " " + c.Path()
			ctx, span := tracer.Start(ctx, spanName,
				trace.WithSpanKind(trace.SpanKindServer),
			)
			defer span.End()

			span.SetAttributes(
				attribute.String("http.method", c.Request().Method),
				attribute.String("http.url", c.Request().URL.String()),
				attribute.String("http.route", c.Path()),
				attribute.String("http.user_agent", c.Request().UserAgent()),
			)

			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)

			span.SetAttributes(
				attribute.Int("http.status_code", c.Response().Status),
			)
			if err != nil {
				span.RecordError(err)
			}

			return err
		}
	}
}

package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics OpenTelemetry 指标集合
type OTelMetrics struct {
	// 认证提交相关指标
	SubmissionTotal    metric.Int64Counter
	SubmissionRejected metric.Int64Counter

	// 结算相关指标
	EvaluationTotal    metric.Int64Counter
	EvaluationDuration metric.Float64Histogram
	ExemptionGranted   metric.Int64Counter

	// 结算扫描相关指标
	SweepPublished metric.Int64Counter
}

var (
	// 全局指标实例
	metrics *OTelMetrics
	// meter 用于创建指标
	meter = otel.Meter("studycheck")
)

// InitMetrics 初始化 OpenTelemetry 指标
func InitMetrics() error {
	var err error

	metrics = &OTelMetrics{}

	metrics.SubmissionTotal, err = meter.Int64Counter(
		"verification_submissions_total",
		metric.WithDescription("Total number of verification submissions recorded"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return err
	}

	metrics.SubmissionRejected, err = meter.Int64Counter(
		"verification_submissions_rejected_total",
		metric.WithDescription("Submissions rejected by window or method validation"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return err
	}

	metrics.EvaluationTotal, err = meter.Int64Counter(
		"verification_evaluations_total",
		metric.WithDescription("Total number of evaluation records written"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return err
	}

	metrics.EvaluationDuration, err = meter.Float64Histogram(
		"verification_evaluation_duration_seconds",
		metric.WithDescription("Time spent evaluating one member-day"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	metrics.ExemptionGranted, err = meter.Int64Counter(
		"verification_exemptions_granted_total",
		metric.WithDescription("Exemptions consumed during evaluation"),
		metric.WithUnit("{exemption}"),
	)
	if err != nil {
		return err
	}

	metrics.SweepPublished, err = meter.Int64Counter(
		"verification_sweep_messages_total",
		metric.WithDescription("Evaluation sweep messages published"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// Get 获取全局指标实例
func Get() (*OTelMetrics, error) {
	if metrics == nil {
		return nil, fmt.Errorf("metrics not initialized, call InitMetrics() first")
	}
	return metrics, nil
}

// RecordSubmission 记录一次提交（method 维度）
func RecordSubmission(ctx context.Context, method string, accepted bool) {
	if metrics == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("method", method))
	if accepted {
		metrics.SubmissionTotal.Add(ctx, 1, attrs)
	} else {
		metrics.SubmissionRejected.Add(ctx, 1, attrs)
	}
}

// RecordEvaluation 记录一次结算结果
func RecordEvaluation(ctx context.Context, method string, passed, exempted bool, seconds float64) {
	if metrics == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.Bool("passed", passed),
		attribute.Bool("exempted", exempted),
	)
	metrics.EvaluationTotal.Add(ctx, 1, attrs)
	metrics.EvaluationDuration.Record(ctx, seconds, attrs)

	if exempted {
		metrics.ExemptionGranted.Add(ctx, 1, metric.WithAttributes(attribute.String("method", method)))
	}
}

// RecordSweepPublished 记录一条结算扫描消息投放
func RecordSweepPublished(ctx context.Context) {
	if metrics == nil {
		return
	}
	metrics.SweepPublished.Add(ctx, 1)
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"StudyCheck/internal/model"
	"StudyCheck/pkg/errors"
	"StudyCheck/pkg/logger"
	"StudyCheck/pkg/metrics"
	"StudyCheck/pkg/snowflake"
	"StudyCheck/utils"
)

type GpsService struct{}

var (
	gpsService *GpsService
	gpsOnce    sync.Once
)

func Gps() *GpsService {
	gpsOnce.Do(func() {
		gpsService = &GpsService{}
	})

	return gpsService
}

// SubmitGps 到场定位提交。按规则模式对集合点做半径判定：
// COMMON 只看第一个集合点，PER_LOCATION 取距离最近的一个。
// 超出半径的提交直接拒绝，不落库
func (s *GpsService) SubmitGps(
	ctx context.Context,
	groupID int64,
	slot int,
	memberID int64,
	latitude, longitude float64,
	now time.Time,
) (*model.SubmissionRecord, string, error) {
	rule, date, err := Submission().prepare(ctx, groupID, slot, memberID, model.MethodGps, now)
	if err != nil {
		return nil, "", err
	}

	locations, err := Rule().ListLocations(ctx, groupID, slot, memberID)
	if err != nil {
		return nil, "", err
	}
	if len(locations) == 0 {
		return nil, "", errors.NoGpsLocation
	}

	distance, nearest := s.nearestDistance(rule, locations, latitude, longitude)

	if distance > float64(rule.RadiusM) {
		metrics.RecordSubmission(ctx, string(model.MethodGps), false)
		logger.Logger.Info("GPS submission rejected: out of radius",
			zap.Int64("group_id", groupID),
			zap.Int("slot", slot),
			zap.Int64("member_id", memberID),
			zap.Float64("distance_m", distance),
			zap.Int("radius_m", rule.RadiusM),
		)
		return nil, "", errors.OutOfRadius
	}

	recordID, err := snowflake.NextID(snowflake.GeneratorTypeRecord)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate record ID: %w", err)
	}

	record := &model.SubmissionRecord{
		RecordID:         recordID,
		GroupID:          groupID,
		Slot:             slot,
		MemberID:         memberID,
		VerificationDate: date,
		MethodCode:       model.MethodGps,
		Latitude:         latitude,
		Longitude:        longitude,
		DistanceM:        distance,
		WithinRadius:     true,
		SubmittedAt:      now.UTC(),
	}

	if err := Submission().upsert(ctx, record); err != nil {
		return nil, "", err
	}

	metrics.RecordSubmission(ctx, string(model.MethodGps), true)
	logger.Logger.Info("GPS submission accepted",
		zap.Int64("group_id", groupID),
		zap.Int("slot", slot),
		zap.Int64("member_id", memberID),
		zap.String("date", utils.FormatDate(date)),
		zap.Float64("distance_m", distance),
		zap.String("location", nearest),
	)

	return record, nearest, nil
}

// nearestDistance 按模式计算参与判定的距离与集合点名称
func (s *GpsService) nearestDistance(
	rule *model.VerificationRule,
	locations []*model.GpsLocation,
	latitude, longitude float64,
) (float64, string) {
	if rule.RadiusMode == model.RadiusCommon {
		loc := locations[0]
		return utils.HaversineM(latitude, longitude, loc.Latitude, loc.Longitude), loc.Name
	}

	best := -1.0
	name := ""
	for _, loc := range locations {
		d := utils.HaversineM(latitude, longitude, loc.Latitude, loc.Longitude)
		if best < 0 || d < best {
			best = d
			name = loc.Name
		}
	}
	return best, name
}

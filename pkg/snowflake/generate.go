package snowflake

import (
	"errors"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// GeneratorType 区分不同用途的 ID 序列，record 用于业务主键，message 用于 MQ 消息
type GeneratorType int

const (
	GeneratorTypeRecord GeneratorType = iota
	GeneratorTypeMessage
)

var (
	nodes map[GeneratorType]*snowflake.Node
	once  sync.Once

	errInvalidMachineID   = errors.New("invalid snowflake machine id")
	errGeneratorUninitial = errors.New("snowflake generator is not initialized")
)

func Init(machineID, dataCenterID int64) error {
	var initErr error

	once.Do(func() {
		if machineID < 0 || machineID > 31 {
			initErr = errInvalidMachineID
			return
		}

		nodes = make(map[GeneratorType]*snowflake.Node)

		// datacenterID 和 machineID 都是 0~31，拼出基础 nodeID，
		// message 序列使用相邻的 nodeID，避免两类 ID 撞号
		base := (dataCenterID << 5) | machineID

		for _, t := range []GeneratorType{GeneratorTypeRecord, GeneratorTypeMessage} {
			node, err := snowflake.NewNode((base + int64(t)) % 1024)
			if err != nil {
				initErr = err
				return
			}
			nodes[t] = node
		}
	})

	return initErr
}

func NextID(t GeneratorType) (int64, error) {
	if nodes == nil {
		return 0, errGeneratorUninitial
	}

	node, ok := nodes[t]
	if !ok {
		return 0, errGeneratorUninitial
	}

	return node.Generate().Int64(), nil
}

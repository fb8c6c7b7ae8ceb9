package scorebot

import (
	"context"
	"fmt"
	"github.com/slack-go/slack/socketmode"
	"hash"
	"hash/crc32"
	"math"
	"sync"
)

// eventHandler processes a routed event
type eventHandler func(evt socketmode.Event)

type partitionRouter struct {
	// Logger
	log *sLogger

	// eventQueues with partition keyed by the hash of the user id of the event so that
	// the interactions of a user are processed in the order they were received while
	// different users are processed concurrently
	eventQueues []chan socketmode.Event

	// workerTerminationSignals are closed by each worker once its queue is drained
	workerTerminationSignals []chan bool

	// hash function to direct event processing to partitions
	hasherMu sync.Mutex
	hasher   hash.Hash32
	hashMask int

	*instrumenter
}

func newPartitionRouter(partitionCount int, queueBufferSize int, log *sLogger, instrumenter *instrumenter) (pr *partitionRouter, err error) {
	if !isPowerOfTwo(partitionCount) {
		return nil, fmt.Errorf("A partition router can only work with a partitionCount that is a power of two but was [%d]", partitionCount)
	}

	pr = new(partitionRouter)
	pr.eventQueues = make([]chan socketmode.Event, partitionCount)
	for i := range pr.eventQueues {
		pr.eventQueues[i] = make(chan socketmode.Event, queueBufferSize)
	}
	pr.workerTerminationSignals = make([]chan bool, partitionCount)
	for i := range pr.workerTerminationSignals {
		pr.workerTerminationSignals[i] = make(chan bool)
	}
	pr.hasher = crc32.NewIEEE()
	pr.hashMask = hashMask(partitionCount)
	pr.log = log
	pr.instrumenter = instrumenter

	return pr, nil
}

// start launches one worker per partition
func (pr *partitionRouter) start(handle eventHandler) {
	for i := range pr.eventQueues {
		go func(queue <-chan socketmode.Event, done chan<- bool) {
			defer close(done)

			for evt := range queue {
				handle(evt)
			}
		}(pr.eventQueues[i], pr.workerTerminationSignals[i])
	}
}

// stop closes all queues and waits for workers to finish processing what's left in them
func (pr *partitionRouter) stop() {
	for _, q := range pr.eventQueues {
		close(q)
	}

	for _, done := range pr.workerTerminationSignals {
		<-done
	}
}

// routeEvent routes the event processing to the partition of its user to ensure that all events of a user
// are processed in order
func (pr *partitionRouter) routeEvent(userID string, evt socketmode.Event) {
	partition := pr.partitionForUserID(userID)

	pr.log.Debugf("Dispatching [%s] event of user [%s] to partition [%d]\n", evt.Type, userID, partition)
	d := measure(func() {
		pr.eventQueues[partition] <- evt
	})

	pr.coreMetrics.eventDispatchLatencyMillis.Record(context.Background(), d.Milliseconds(), pr.appAttributes())
}

// partitionForUserID returns the partition index for a given user ID
func (pr *partitionRouter) partitionForUserID(userID string) (partition int) {
	pr.hasherMu.Lock()
	defer pr.hasherMu.Unlock()

	pr.hasher.Reset()
	pr.hasher.Write([]byte(userID))
	res := pr.hasher.Sum32()

	// Keep only the rightmost bits so we have a max equal to the partition count
	return int(res) & pr.hashMask
}

// isPowerOfTwo returns true if val is a power of two or false if not
func isPowerOfTwo(val int) bool {
	return (val != 0) && (val&(val-1)) == 0
}

// hashMask builds a mask for a partitionCount (which should be a power of two) to get a hash value
// that is in the range of the number of partitions we have
func hashMask(partitionCount int) int {
	maskSize := int(math.Log2(float64(partitionCount)))
	mask := 0
	for i := 0; i < maskSize; i++ {
		mask = mask<<1 | 1
	}

	return mask
}

package nrl

import "sync"

//Task is one unit of work for a Pool.
type Task interface {
	Execute()
}

//Pool runs tasks on a fixed number of worker goroutines.
type Pool struct {
	tasks chan Task
	wg    sync.WaitGroup
}

//NewPool starts threadsNum workers that consume tasks until Close is called.
func NewPool(threadsNum int) *Pool {
	pool := &Pool{tasks: make(chan Task)}
	for p := 0; p < threadsNum; p++ {
		pool.wg.Add(1)
		go func() {
			defer pool.wg.Done()
			for task := range pool.tasks {
				task.Execute()
			}
		}()
	}
	return pool
}

//AddTask queues one task. Blocks until a worker is free to pick it up.
func (pool *Pool) AddTask(task Task) {
	pool.tasks <- task
}

//Close signals that no more tasks will be queued.
func (pool *Pool) Close() {
	close(pool.tasks)
}

//WaitAll blocks until every queued task has finished.
func (pool *Pool) WaitAll() {
	pool.wg.Wait()
}

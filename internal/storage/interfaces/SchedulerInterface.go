package interfaces

type SchedulerInterface interface {
	Init()
	Stop()
	RunCycle() error
	RunMaintenance() error
}

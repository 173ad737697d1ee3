package domain

// RecordKind names a vigency-tracked record family
type RecordKind string

const (
	KindCourses   RecordKind = "courses"
	KindEquipment RecordKind = "equipment"
	KindDocuments RecordKind = "documents"
)

// RecordKinds lists the vigency-tracked kinds in display order
var RecordKinds = []RecordKind{KindCourses, KindEquipment, KindDocuments}

// ExportKind names an exportable table
type ExportKind string

const (
	ExportWorkers   ExportKind = "workers"
	ExportCourses   ExportKind = "courses"
	ExportEquipment ExportKind = "equipment"
	ExportDocuments ExportKind = "documents"
	ExportSuppliers ExportKind = "suppliers"
	ExportMaterials ExportKind = "materials"
)

// ExportKinds lists the exportable tables
var ExportKinds = []ExportKind{
	ExportWorkers,
	ExportCourses,
	ExportEquipment,
	ExportDocuments,
	ExportSuppliers,
	ExportMaterials,
}

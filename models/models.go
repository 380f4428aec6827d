package models

import "time"

const (
	RolePatient = "PATIENT"
	RoleDoctor  = "DOCTOR"
	RoleAdmin   = "ADMIN"
)

const (
	StatusNotPaid     = "Not Paid"
	StatusNotApproved = "Not Approved"
)

type User struct {
	ID           string `json:"userId" bson:"_id"`
	Password     string `json:"-" bson:"password"`
	Role         string `json:"role" bson:"role"`
	ProfileImage string `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
}

// Patient is the parent record owning the nested per-entry mappings. Each
// mapping is keyed by a server-generated entry id; the same id is stamped
// into the entry value under "id" so clients can address entries later.
type Patient struct {
	ID               string                       `json:"userId" bson:"_id"`
	Name             string                       `json:"name" bson:"name"`
	Address          string                       `json:"address" bson:"address"`
	Contact          string                       `json:"contact" bson:"contact"`
	EmergencyContact string                       `json:"emergencyContact" bson:"emergencyContact"`
	AssignedDoctor   string                       `json:"assigned_doctor" bson:"assigned_doctor"`
	Prescriptions    map[string]Prescription      `json:"prescriptions,omitempty" bson:"prescriptions,omitempty"`
	HealthStatus     map[string]HealthStatusEntry `json:"healthStatus,omitempty" bson:"healthStatus,omitempty"`
	Predictions      map[string]Prediction        `json:"predictions,omitempty" bson:"predictions,omitempty"`
}

type Prescription struct {
	ID           string    `json:"id" bson:"id"`
	Medication   string    `json:"medication" bson:"medication"`
	Dosage       string    `json:"dosage" bson:"dosage"`
	Instructions string    `json:"instructions,omitempty" bson:"instructions,omitempty"`
	PrescribedBy string    `json:"prescribedBy" bson:"prescribedBy"`
	Timestamp    time.Time `json:"timestamp" bson:"timestamp"`
}

type HealthStatusEntry struct {
	ID        string    `json:"id" bson:"id"`
	Status    string    `json:"status" bson:"status"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

type Prediction struct {
	ID              string    `json:"id" bson:"id"`
	DiagnosisList   []string  `json:"diagnosisList" bson:"diagnosisList"`
	ProbabilityList []float64 `json:"probabilityList" bson:"probabilityList"`
	SymptomsList    []string  `json:"symptomsList" bson:"symptomsList"`
	Timestamp       time.Time `json:"timestamp" bson:"timestamp"`
}

type Symptom struct {
	SymptomID          string    `json:"symptomId" bson:"symptomId"`
	UserID             string    `json:"userId" bson:"userId"`
	DoctorID           string    `json:"doctorId" bson:"doctorId"`
	SymptomDescription string    `json:"symptomDescription" bson:"symptomDescription"`
	Timestamp          time.Time `json:"timestamp" bson:"timestamp"`
}

type Appointment struct {
	AppointmentID         string    `json:"appointmentId" bson:"appointmentId"`
	UserID                string    `json:"userId" bson:"userId"`
	DoctorID              string    `json:"doctorId" bson:"doctorId"`
	HospitalID            string    `json:"hospitalId,omitempty" bson:"hospitalId,omitempty"`
	AppointmentDate       string    `json:"appointmentDate" bson:"appointmentDate"`
	AppointmentTime       string    `json:"appointmentTime" bson:"appointmentTime"`
	Duration              int       `json:"duration" bson:"duration"`
	TypeOfSickness        string    `json:"typeOfSickness" bson:"typeOfSickness"`
	AdditionalNotes       string    `json:"additionalNotes,omitempty" bson:"additionalNotes,omitempty"`
	InsurancePolicyNumber string    `json:"insurancePolicyNumber,omitempty" bson:"insurancePolicyNumber,omitempty"`
	Email                 string    `json:"email" bson:"email"`
	AppointmentCost       float64   `json:"appointmentCost" bson:"appointmentCost"`
	StatusPayment         string    `json:"statusPayment" bson:"statusPayment"`
	StatusAppointment     string    `json:"statusAppointment" bson:"statusAppointment"`
	Timestamp             time.Time `json:"timestamp" bson:"timestamp"`
}

type Hospital struct {
	HospitalID  string   `json:"hospitalId" bson:"hospitalId"`
	Name        string   `json:"name" bson:"name"`
	Address     string   `json:"address" bson:"address"`
	Contact     string   `json:"contact" bson:"contact"`
	Departments []string `json:"departments,omitempty" bson:"departments,omitempty"`
}

type Sickness struct {
	ID          string `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

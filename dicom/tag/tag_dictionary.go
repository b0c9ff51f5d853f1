// Curated DICOM data dictionary.
//
// The full PS3.6 data dictionary numbers in the thousands of entries and is
// ordinarily machine-generated from the NEMA docbook XML. That generator and
// its source XML are not part of this module; this file hand-curates the
// subset of tags exercised by the dataset helpers, the file meta information
// reader/writer, and pixel data handling. Callers needing the complete
// standard dictionary should merge additional Info entries into TagDict at
// init time.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part06.html#chapter_6
package tag

import "github.com/brightlake/dicomcore/dicom/vr"

// File Meta Information (group 0002) and identification tags.
var (
	FileMetaInformationGroupLength = New(0x0002, 0x0000)
	FileMetaInformationVersion     = New(0x0002, 0x0001)
	MediaStorageSOPClassUID        = New(0x0002, 0x0002)
	MediaStorageSOPInstanceUID     = New(0x0002, 0x0003)
	TransferSyntaxUID              = New(0x0002, 0x0010)
	ImplementationClassUID         = New(0x0002, 0x0012)
	ImplementationVersionName      = New(0x0002, 0x0013)
	InstanceCreatorUID             = New(0x0002, 0x0014)

	SpecificCharacterSet = New(0x0008, 0x0005)
	InstanceCreationDate = New(0x0008, 0x0012)
	InstanceCreationTime = New(0x0008, 0x0013)
	SOPClassUID          = New(0x0008, 0x0016)
	SOPInstanceUID       = New(0x0008, 0x0018)
)

// Study / series / equipment identification (group 0008).
var (
	StudyDate                    = New(0x0008, 0x0020)
	SeriesDate                   = New(0x0008, 0x0021)
	AcquisitionDate              = New(0x0008, 0x0022)
	ContentDate                  = New(0x0008, 0x0023)
	AcquisitionDateTime          = New(0x0008, 0x002A)
	StudyTime                    = New(0x0008, 0x0030)
	SeriesTime                   = New(0x0008, 0x0031)
	AcquisitionTime              = New(0x0008, 0x0032)
	ContentTime                  = New(0x0008, 0x0033)
	AccessionNumber              = New(0x0008, 0x0050)
	Modality                     = New(0x0008, 0x0060)
	Manufacturer                 = New(0x0008, 0x0070)
	InstitutionName              = New(0x0008, 0x0080)
	InstitutionAddress           = New(0x0008, 0x0081)
	ReferringPhysicianName       = New(0x0008, 0x0090)
	ReferringPhysicianAddress    = New(0x0008, 0x0092)
	ReferringPhysicianTelephoneNumbers = New(0x0008, 0x0094)
	StationName                  = New(0x0008, 0x1010)
	StudyDescription              = New(0x0008, 0x1030)
	SeriesDescription             = New(0x0008, 0x103E)
	InstitutionalDepartmentName   = New(0x0008, 0x1040)
	PerformingPhysicianName       = New(0x0008, 0x1050)
	NameOfPhysiciansReadingStudy  = New(0x0008, 0x1060)
	OperatorsName                 = New(0x0008, 0x1070)
	ReferencedStudySequence       = New(0x0008, 0x1110)
	DerivationDescription         = New(0x0008, 0x2111)
	IssuerOfAccessionNumberSequence = New(0x0008, 0x0051)
)

// Patient module (group 0010).
var (
	PatientName                  = New(0x0010, 0x0010)
	PatientID                    = New(0x0010, 0x0020)
	PatientBirthDate              = New(0x0010, 0x0030)
	PatientBirthTime              = New(0x0010, 0x0032)
	PatientSex                    = New(0x0010, 0x0040)
	PatientInstitutionResidence   = New(0x0010, 0x0101)
	OtherPatientIDs                = New(0x0010, 0x1000)
	OtherPatientNames              = New(0x0010, 0x1001)
	PatientBirthName               = New(0x0010, 0x1005)
	PatientAge                     = New(0x0010, 0x1010)
	PatientSize                    = New(0x0010, 0x1020)
	PatientWeight                  = New(0x0010, 0x1030)
	PatientAddress                 = New(0x0010, 0x1040)
	PatientMotherBirthName         = New(0x0010, 0x1060)
	MilitaryRank                   = New(0x0010, 0x1080)
	BranchOfService                = New(0x0010, 0x1081)
	MedicalRecordLocator           = New(0x0010, 0x1090)
	AdditionalPatientHistory       = New(0x0010, 0x21B0)
	PatientComments                = New(0x0010, 0x4000)
	EthnicGroup                    = New(0x0010, 0x2160)
	Occupation                     = New(0x0010, 0x2180)
	CountryOfResidence             = New(0x0010, 0x2150)
	RegionOfResidence              = New(0x0010, 0x2152)
	PatientTelephoneNumbers        = New(0x0010, 0x2154)
	PatientIdentityRemoved         = New(0x0012, 0x0062)

	// Veterinary extensions (PS3.3 C.7.1.1).
	PatientBreedDescription     = New(0x0010, 0x2292)
	PatientSpeciesDescription   = New(0x0010, 0x2201)
	PatientSexNeutered          = New(0x0010, 0x2203)
	ResponsibleOrganization     = New(0x0010, 0x2299)
	ResponsiblePerson           = New(0x0010, 0x2297)
	CurrentPatientLocation      = New(0x0038, 0x0300)
)

// Person-identification / contact tags used across IOD modules.
var (
	ConsultingPhysicianName = New(0x0008, 0x009C)
	PersonAddress           = New(0x0040, 0xA123) // used generically for structured-content person references
	PersonTelephoneNumbers  = New(0x0040, 0xA124)
	RequestingPhysician     = New(0x0032, 0x1032)
	RequestingService       = New(0x0032, 0x1033)
)

// General study / series / equipment (groups 0020/0018).
var (
	StudyInstanceUID = New(0x0020, 0x000D)
	SeriesInstanceUID = New(0x0020, 0x000E)
	StudyID           = New(0x0020, 0x0010)
	SeriesNumber      = New(0x0020, 0x0011)
	InstanceNumber    = New(0x0020, 0x0013)

	DeviceSerialNumber = New(0x0018, 0x1000)
	ProtocolName       = New(0x0018, 0x1030)
	TimezoneOffsetFromUTC = New(0x0008, 0x0201)
)

// Procedure / performed-step (group 0040).
var (
	PerformedProcedureStepStartDate  = New(0x0040, 0x0244)
	PerformedProcedureStepStartTime  = New(0x0040, 0x0245)
	PerformedProcedureStepEndDate    = New(0x0040, 0x0250)
	PerformedProcedureStepEndTime    = New(0x0040, 0x0251)
	PerformedProcedureStepDescription = New(0x0040, 0x0254)
	RequestedProcedureDescription    = New(0x0032, 0x1060)
	RequestAttributesSequence        = New(0x0040, 0x0275)
	AdmittingDiagnosesDescription    = New(0x0008, 0x1080)
)

// Image pixel module (group 0028) and pixel data (group 7FE0).
var (
	SamplesPerPixel            = New(0x0028, 0x0002)
	PhotometricInterpretation  = New(0x0028, 0x0004)
	PlanarConfiguration        = New(0x0028, 0x0006)
	NumberOfFrames             = New(0x0028, 0x0008)
	Rows                       = New(0x0028, 0x0010)
	Columns                    = New(0x0028, 0x0011)
	BitsAllocated              = New(0x0028, 0x0100)
	BitsStored                 = New(0x0028, 0x0101)
	HighBit                    = New(0x0028, 0x0102)
	PixelRepresentation        = New(0x0028, 0x0103)

	PixelData = New(0x7FE0, 0x0010)
)

// Free-text / comment / signature tags that appear across modules.
var (
	ImageComments              = New(0x0020, 0x4000)
	TextComments               = New(0x0040, 0xA160)
	TextString                 = New(0x0040, 0xA168)
	FrameComments              = New(0x0020, 0x9158)
	DigitalSignaturesSequence  = New(0xFFFA, 0xFFFA)
	ModifiedAttributesSequence = New(0x0400, 0x0550)
	OriginalAttributesSequence = New(0x0400, 0x0561)
)

// TagDict is the package-level dictionary consulted by Find, FindByKeyword,
// and FindByName. It is populated from the curated entries above via init.
var TagDict = map[Tag]Info{}

func entry(t Tag, vrs []vr.VR, name, keyword, vm string, retired bool) {
	TagDict[t] = Info{Tag: t, VRs: vrs, Name: name, Keyword: keyword, VM: vm, Retired: retired}
}

func init() {
	entry(FileMetaInformationGroupLength, []vr.VR{vr.UnsignedLong}, "File Meta Information Group Length", "FileMetaInformationGroupLength", "1", false)
	entry(FileMetaInformationVersion, []vr.VR{vr.OtherByte}, "File Meta Information Version", "FileMetaInformationVersion", "1", false)
	entry(MediaStorageSOPClassUID, []vr.VR{vr.UniqueIdentifier}, "Media Storage SOP Class UID", "MediaStorageSOPClassUID", "1", false)
	entry(MediaStorageSOPInstanceUID, []vr.VR{vr.UniqueIdentifier}, "Media Storage SOP Instance UID", "MediaStorageSOPInstanceUID", "1", false)
	entry(TransferSyntaxUID, []vr.VR{vr.UniqueIdentifier}, "Transfer Syntax UID", "TransferSyntaxUID", "1", false)
	entry(ImplementationClassUID, []vr.VR{vr.UniqueIdentifier}, "Implementation Class UID", "ImplementationClassUID", "1", false)
	entry(ImplementationVersionName, []vr.VR{vr.ShortString}, "Implementation Version Name", "ImplementationVersionName", "1", false)
	entry(InstanceCreatorUID, []vr.VR{vr.UniqueIdentifier}, "Instance Creator UID", "InstanceCreatorUID", "1", false)

	entry(SpecificCharacterSet, []vr.VR{vr.CodeString}, "Specific Character Set", "SpecificCharacterSet", "1-n", false)
	entry(InstanceCreationDate, []vr.VR{vr.Date}, "Instance Creation Date", "InstanceCreationDate", "1", false)
	entry(InstanceCreationTime, []vr.VR{vr.Time}, "Instance Creation Time", "InstanceCreationTime", "1", false)
	entry(SOPClassUID, []vr.VR{vr.UniqueIdentifier}, "SOP Class UID", "SOPClassUID", "1", false)
	entry(SOPInstanceUID, []vr.VR{vr.UniqueIdentifier}, "SOP Instance UID", "SOPInstanceUID", "1", false)

	entry(StudyDate, []vr.VR{vr.Date}, "Study Date", "StudyDate", "1", false)
	entry(SeriesDate, []vr.VR{vr.Date}, "Series Date", "SeriesDate", "1", false)
	entry(AcquisitionDate, []vr.VR{vr.Date}, "Acquisition Date", "AcquisitionDate", "1", false)
	entry(ContentDate, []vr.VR{vr.Date}, "Content Date", "ContentDate", "1", false)
	entry(AcquisitionDateTime, []vr.VR{vr.DateTime}, "Acquisition DateTime", "AcquisitionDateTime", "1", false)
	entry(StudyTime, []vr.VR{vr.Time}, "Study Time", "StudyTime", "1", false)
	entry(SeriesTime, []vr.VR{vr.Time}, "Series Time", "SeriesTime", "1", false)
	entry(AcquisitionTime, []vr.VR{vr.Time}, "Acquisition Time", "AcquisitionTime", "1", false)
	entry(ContentTime, []vr.VR{vr.Time}, "Content Time", "ContentTime", "1", false)
	entry(AccessionNumber, []vr.VR{vr.ShortString}, "Accession Number", "AccessionNumber", "1", false)
	entry(IssuerOfAccessionNumberSequence, []vr.VR{vr.SequenceOfItems}, "Issuer of Accession Number Sequence", "IssuerOfAccessionNumberSequence", "1", false)
	entry(Modality, []vr.VR{vr.CodeString}, "Modality", "Modality", "1", false)
	entry(Manufacturer, []vr.VR{vr.LongString}, "Manufacturer", "Manufacturer", "1", false)
	entry(InstitutionName, []vr.VR{vr.LongString}, "Institution Name", "InstitutionName", "1", false)
	entry(InstitutionAddress, []vr.VR{vr.ShortText}, "Institution Address", "InstitutionAddress", "1", false)
	entry(ReferringPhysicianName, []vr.VR{vr.PersonName}, "Referring Physician's Name", "ReferringPhysicianName", "1", false)
	entry(ReferringPhysicianAddress, []vr.VR{vr.ShortText}, "Referring Physician's Address", "ReferringPhysicianAddress", "1", false)
	entry(ReferringPhysicianTelephoneNumbers, []vr.VR{vr.ShortString}, "Referring Physician's Telephone Numbers", "ReferringPhysicianTelephoneNumbers", "1-n", false)
	entry(ConsultingPhysicianName, []vr.VR{vr.PersonName}, "Consulting Physician's Name", "ConsultingPhysicianName", "1-n", false)
	entry(StationName, []vr.VR{vr.ShortString}, "Station Name", "StationName", "1", false)
	entry(StudyDescription, []vr.VR{vr.LongString}, "Study Description", "StudyDescription", "1", false)
	entry(SeriesDescription, []vr.VR{vr.LongString}, "Series Description", "SeriesDescription", "1", false)
	entry(InstitutionalDepartmentName, []vr.VR{vr.LongString}, "Institutional Department Name", "InstitutionalDepartmentName", "1", false)
	entry(PerformingPhysicianName, []vr.VR{vr.PersonName}, "Performing Physician's Name", "PerformingPhysicianName", "1-n", false)
	entry(NameOfPhysiciansReadingStudy, []vr.VR{vr.PersonName}, "Name of Physician(s) Reading Study", "NameOfPhysiciansReadingStudy", "1-n", false)
	entry(OperatorsName, []vr.VR{vr.PersonName}, "Operators' Name", "OperatorsName", "1-n", false)
	entry(ReferencedStudySequence, []vr.VR{vr.SequenceOfItems}, "Referenced Study Sequence", "ReferencedStudySequence", "1", false)
	entry(DerivationDescription, []vr.VR{vr.ShortText}, "Derivation Description", "DerivationDescription", "1", false)
	entry(AdmittingDiagnosesDescription, []vr.VR{vr.LongString}, "Admitting Diagnoses Description", "AdmittingDiagnosesDescription", "1-n", false)
	entry(TimezoneOffsetFromUTC, []vr.VR{vr.ShortString}, "Timezone Offset From UTC", "TimezoneOffsetFromUTC", "1", false)

	entry(PatientName, []vr.VR{vr.PersonName}, "Patient's Name", "PatientName", "1", false)
	entry(PatientID, []vr.VR{vr.LongString}, "Patient ID", "PatientID", "1", false)
	entry(PatientBirthDate, []vr.VR{vr.Date}, "Patient's Birth Date", "PatientBirthDate", "1", false)
	entry(PatientBirthTime, []vr.VR{vr.Time}, "Patient's Birth Time", "PatientBirthTime", "1", false)
	entry(PatientSex, []vr.VR{vr.CodeString}, "Patient's Sex", "PatientSex", "1", false)
	entry(PatientInstitutionResidence, []vr.VR{vr.LongString}, "Patient's Institution Residence", "PatientInstitutionResidence", "1", false)
	entry(OtherPatientIDs, []vr.VR{vr.LongString}, "Other Patient IDs", "OtherPatientIDs", "1-n", true)
	entry(OtherPatientNames, []vr.VR{vr.PersonName}, "Other Patient Names", "OtherPatientNames", "1-n", true)
	entry(PatientBirthName, []vr.VR{vr.PersonName}, "Patient's Birth Name", "PatientBirthName", "1", true)
	entry(PatientAge, []vr.VR{vr.AgeString}, "Patient's Age", "PatientAge", "1", false)
	entry(PatientSize, []vr.VR{vr.DecimalString}, "Patient's Size", "PatientSize", "1", false)
	entry(PatientWeight, []vr.VR{vr.DecimalString}, "Patient's Weight", "PatientWeight", "1", false)
	entry(PatientAddress, []vr.VR{vr.LongString}, "Patient's Address", "PatientAddress", "1", false)
	entry(PatientMotherBirthName, []vr.VR{vr.PersonName}, "Patient's Mother's Birth Name", "PatientMotherBirthName", "1", false)
	entry(MilitaryRank, []vr.VR{vr.LongString}, "Military Rank", "MilitaryRank", "1", false)
	entry(BranchOfService, []vr.VR{vr.LongString}, "Branch of Service", "BranchOfService", "1", false)
	entry(MedicalRecordLocator, []vr.VR{vr.LongString}, "Medical Record Locator", "MedicalRecordLocator", "1", false)
	entry(AdditionalPatientHistory, []vr.VR{vr.LongText}, "Additional Patient History", "AdditionalPatientHistory", "1", false)
	entry(PatientComments, []vr.VR{vr.LongText}, "Patient Comments", "PatientComments", "1", false)
	entry(EthnicGroup, []vr.VR{vr.ShortString}, "Ethnic Group", "EthnicGroup", "1", false)
	entry(Occupation, []vr.VR{vr.ShortString}, "Occupation", "Occupation", "1", false)
	entry(CountryOfResidence, []vr.VR{vr.LongString}, "Country of Residence", "CountryOfResidence", "1", false)
	entry(RegionOfResidence, []vr.VR{vr.LongString}, "Region of Residence", "RegionOfResidence", "1-n", false)
	entry(PatientTelephoneNumbers, []vr.VR{vr.ShortString}, "Patient's Telephone Numbers", "PatientTelephoneNumbers", "1-n", false)
	entry(PatientIdentityRemoved, []vr.VR{vr.CodeString}, "Patient Identity Removed", "PatientIdentityRemoved", "1", false)

	entry(PatientBreedDescription, []vr.VR{vr.LongString}, "Patient Breed Description", "PatientBreedDescription", "1", false)
	entry(PatientSpeciesDescription, []vr.VR{vr.LongString}, "Patient Species Description", "PatientSpeciesDescription", "1", false)
	entry(PatientSexNeutered, []vr.VR{vr.CodeString}, "Patient Sex Neutered", "PatientSexNeutered", "1", false)
	entry(ResponsibleOrganization, []vr.VR{vr.LongString}, "Responsible Organization", "ResponsibleOrganization", "1", false)
	entry(ResponsiblePerson, []vr.VR{vr.PersonName}, "Responsible Person", "ResponsiblePerson", "1", false)
	entry(CurrentPatientLocation, []vr.VR{vr.LongString}, "Current Patient Location", "CurrentPatientLocation", "1", false)

	entry(PersonAddress, []vr.VR{vr.ShortText}, "Person Address", "PersonAddress", "1", false)
	entry(PersonTelephoneNumbers, []vr.VR{vr.LongString}, "Person Telephone Numbers", "PersonTelephoneNumbers", "1-n", false)
	entry(RequestingPhysician, []vr.VR{vr.PersonName}, "Requesting Physician", "RequestingPhysician", "1", false)
	entry(RequestingService, []vr.VR{vr.LongString}, "Requesting Service", "RequestingService", "1", false)

	entry(StudyInstanceUID, []vr.VR{vr.UniqueIdentifier}, "Study Instance UID", "StudyInstanceUID", "1", false)
	entry(SeriesInstanceUID, []vr.VR{vr.UniqueIdentifier}, "Series Instance UID", "SeriesInstanceUID", "1", false)
	entry(StudyID, []vr.VR{vr.ShortString}, "Study ID", "StudyID", "1", false)
	entry(SeriesNumber, []vr.VR{vr.IntegerString}, "Series Number", "SeriesNumber", "1", false)
	entry(InstanceNumber, []vr.VR{vr.IntegerString}, "Instance Number", "InstanceNumber", "1", false)

	entry(DeviceSerialNumber, []vr.VR{vr.LongString}, "Device Serial Number", "DeviceSerialNumber", "1", false)
	entry(ProtocolName, []vr.VR{vr.LongString}, "Protocol Name", "ProtocolName", "1", false)

	entry(PerformedProcedureStepStartDate, []vr.VR{vr.Date}, "Performed Procedure Step Start Date", "PerformedProcedureStepStartDate", "1", false)
	entry(PerformedProcedureStepStartTime, []vr.VR{vr.Time}, "Performed Procedure Step Start Time", "PerformedProcedureStepStartTime", "1", false)
	entry(PerformedProcedureStepEndDate, []vr.VR{vr.Date}, "Performed Procedure Step End Date", "PerformedProcedureStepEndDate", "1", false)
	entry(PerformedProcedureStepEndTime, []vr.VR{vr.Time}, "Performed Procedure Step End Time", "PerformedProcedureStepEndTime", "1", false)
	entry(PerformedProcedureStepDescription, []vr.VR{vr.LongString}, "Performed Procedure Step Description", "PerformedProcedureStepDescription", "1", false)
	entry(RequestedProcedureDescription, []vr.VR{vr.LongString}, "Requested Procedure Description", "RequestedProcedureDescription", "1", false)
	entry(RequestAttributesSequence, []vr.VR{vr.SequenceOfItems}, "Request Attributes Sequence", "RequestAttributesSequence", "1", false)

	entry(SamplesPerPixel, []vr.VR{vr.UnsignedShort}, "Samples per Pixel", "SamplesPerPixel", "1", false)
	entry(PhotometricInterpretation, []vr.VR{vr.CodeString}, "Photometric Interpretation", "PhotometricInterpretation", "1", false)
	entry(PlanarConfiguration, []vr.VR{vr.UnsignedShort}, "Planar Configuration", "PlanarConfiguration", "1", false)
	entry(NumberOfFrames, []vr.VR{vr.IntegerString}, "Number of Frames", "NumberOfFrames", "1", false)
	entry(Rows, []vr.VR{vr.UnsignedShort}, "Rows", "Rows", "1", false)
	entry(Columns, []vr.VR{vr.UnsignedShort}, "Columns", "Columns", "1", false)
	entry(BitsAllocated, []vr.VR{vr.UnsignedShort}, "Bits Allocated", "BitsAllocated", "1", false)
	entry(BitsStored, []vr.VR{vr.UnsignedShort}, "Bits Stored", "BitsStored", "1", false)
	entry(HighBit, []vr.VR{vr.UnsignedShort}, "High Bit", "HighBit", "1", false)
	entry(PixelRepresentation, []vr.VR{vr.UnsignedShort}, "Pixel Representation", "PixelRepresentation", "1", false)
	entry(PixelData, []vr.VR{vr.OtherByte, vr.OtherWord}, "Pixel Data", "PixelData", "1", false)

	entry(ImageComments, []vr.VR{vr.LongText}, "Image Comments", "ImageComments", "1", false)
	entry(TextComments, []vr.VR{vr.UnlimitedText}, "Text Comments", "TextComments", "1", false)
	entry(TextString, []vr.VR{vr.ShortText}, "Text String", "TextString", "1", false)
	entry(FrameComments, []vr.VR{vr.LongText}, "Frame Comments", "FrameComments", "1", false)
	entry(DigitalSignaturesSequence, []vr.VR{vr.SequenceOfItems}, "Digital Signatures Sequence", "DigitalSignaturesSequence", "1", false)
	entry(ModifiedAttributesSequence, []vr.VR{vr.SequenceOfItems}, "Modified Attributes Sequence", "ModifiedAttributesSequence", "1", false)
	entry(OriginalAttributesSequence, []vr.VR{vr.SequenceOfItems}, "Original Attributes Sequence", "OriginalAttributesSequence", "1", false)
}

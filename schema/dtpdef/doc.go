// Package dtpdef reads IEC 61499 structured data types (.dtp files).
//
// A .dtp file is an XML document with a single DataType element holding a
// StructuredType, whose VarDeclaration children become fields:
//
//	<DataType Name="Motor" Comment="drive state">
//	  <StructuredType>
//	    <VarDeclaration Name="enabled" Type="BOOL" InitialValue="TRUE"/>
//	    <VarDeclaration Name="speed" Type="LREAL"/>
//	    <VarDeclaration Name="phases" Type="INT" ArraySize="1..3"/>
//	    <VarDeclaration Name="label" Type="STRING[16]" InitialValue="'idle'"/>
//	  </StructuredType>
//	</DataType>
//
// Elementary IEC types map onto value kinds; any other type name refers to
// another data type and is resolved through a Resolver. ArraySize is either a
// capacity N or an index range lo..hi.
package dtpdef
